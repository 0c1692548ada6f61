/*
 * @Description: 数据库连接初始化与自动迁移（支持 sqlite / mysql / postgres）
 * @Author: 安知鱼
 * @Date: 2025-05-14 21:10:08
 * @LastEditTime: 2025-08-22 09:48:31
 * @LastEditors: 安知鱼
 */
package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anzhiyu-c/soloblog/internal/infra/persistence/gormimpl"
	"github.com/anzhiyu-c/soloblog/pkg/config"
)

// NewDB 根据配置打开数据库连接并完成自动迁移。
// Database.Type 为空或 sqlite 时使用本地文件库，适合单作者独立部署。
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dbType := cfg.GetString(config.KeyDBType)

	gormCfg := &gorm.Config{
		// 把各方言的唯一约束冲突统一翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
	if cfg.GetBool(config.KeyDBDebug) {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)

	switch dbType {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.GetString(config.KeyDBUser),
			cfg.GetString(config.KeyDBPassword),
			cfg.GetString(config.KeyDBHost),
			cfg.GetString(config.KeyDBPort),
			cfg.GetString(config.KeyDBName),
		)
		db, err = gorm.Open(mysql.Open(dsn), gormCfg)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Shanghai",
			cfg.GetString(config.KeyDBHost),
			cfg.GetString(config.KeyDBPort),
			cfg.GetString(config.KeyDBUser),
			cfg.GetString(config.KeyDBPassword),
			cfg.GetString(config.KeyDBName),
		)
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite", "":
		name := cfg.GetString(config.KeyDBName)
		if name == "" {
			name = "soloblog.db"
		}
		dbPath := filepath.Join("data", name)
		if mkErr := os.MkdirAll(filepath.Dir(dbPath), 0755); mkErr != nil {
			return nil, fmt.Errorf("创建数据目录失败: %w", mkErr)
		}
		db, err = gorm.Open(sqlite.Open(dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"), gormCfg)
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", dbType)
	}

	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}
	if dbType == "sqlite" || dbType == "" {
		// SQLite 只有一个写入者
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := autoMigrate(db); err != nil {
		return nil, err
	}

	log.Printf("✅ 数据库初始化完成 (类型: %s)。", displayType(dbType))
	return db, nil
}

func displayType(t string) string {
	if t == "" {
		return "sqlite"
	}
	return t
}

func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&gormimpl.Category{},
		&gormimpl.Tag{},
		&gormimpl.Post{},
		&gormimpl.Image{},
		&gormimpl.SiteStats{},
	); err != nil {
		return fmt.Errorf("数据库自动迁移失败: %w", err)
	}
	return nil
}
