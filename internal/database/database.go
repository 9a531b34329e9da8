package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mingyue-ai/agenthub/internal/config"
	"github.com/mingyue-ai/agenthub/internal/model"
)

// DB 数据库封装
type DB struct {
	*gorm.DB
}

// New 创建数据库连接
func New(cfg *config.Config) (*DB, error) {
	logLevel := gormlogger.Silent
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}

	// 连接池配置
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.MaxLifetime) * time.Second)

	return &DB{DB: db}, nil
}

// AutoMigrate 自动迁移表结构
func (d *DB) AutoMigrate() error {
	if err := d.DB.AutoMigrate(
		&model.User{},
		&model.AuthToken{},
		&model.Agent{},
		&model.Prompt{},
		&model.Message{},
		&model.FileAttachment{},
	); err != nil {
		return err
	}

	// 部分唯一索引：同一 Agent 至多一条 active 提示词，数据库层兜底
	return d.DB.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_prompts_agent_active ON prompts (agent_id) WHERE is_active",
	).Error
}

// Close 关闭数据库连接
func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
