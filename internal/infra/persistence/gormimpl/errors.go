/*
 * @Description: 数据库错误到领域错误的翻译
 * @Author: 安知鱼
 * @Date: 2025-05-14 21:42:19
 * @LastEditTime: 2025-07-30 16:20:05
 * @LastEditors: 安知鱼
 */
package gormimpl

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/anzhiyu-c/soloblog/pkg/constant"
)

// translateError 把 GORM 返回的错误翻译为领域层约定的哨兵错误。
// TranslateError 开启后大部分方言的唯一冲突会变成 gorm.ErrDuplicatedKey，
// 个别 SQLite 驱动版本仍会透传原始消息，这里按关键字兜底。
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return constant.ErrNotFound
	}
	if isDuplicateKey(err) {
		return constant.ErrConflict
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
