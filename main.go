/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-10 19:40:31
 * @LastEditTime: 2025-08-26 11:42:40
 * @LastEditors: 安知鱼
 */
package main

import (
	"log"

	"github.com/anzhiyu-c/soloblog/cmd/server"
)

func main() {
	app, err := server.NewApp()
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("应用运行失败: %v", err)
	}
}
