/*
 * @Description: 统一配置管理 (ini 文件 + 环境变量覆盖，手动加载)
 * @Author: 安知鱼
 * @Date: 2025-05-12 10:30:18
 * @LastEditTime: 2025-08-16 14:02:55
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

const (
	KeyServerPort  = "System.Port"
	KeyServerDebug = "System.Debug"

	KeyDBType     = "Database.Type"
	KeyDBHost     = "Database.Host"
	KeyDBPort     = "Database.Port"
	KeyDBUser     = "Database.User"
	KeyDBPassword = "Database.Password"
	KeyDBName     = "Database.Name"
	KeyDBDebug    = "Database.Debug"

	KeyJWTSecret      = "JWT.Secret"
	KeyJWTExpireHours = "JWT.ExpireHours"

	KeyAdminUsername     = "Admin.Username"
	KeyAdminPasswordHash = "Admin.PasswordHash"

	KeyStorageType          = "Storage.Type"
	KeyStorageBucket        = "Storage.Bucket"
	KeyStorageServer        = "Storage.Server"
	KeyStorageAccessKey     = "Storage.AccessKey"
	KeyStorageSecretKey     = "Storage.SecretKey"
	KeyStoragePublicURL     = "Storage.PublicURL"
	KeyStoragePrivateKey    = "Storage.PrivateKey"
	KeyStorageURLEndpoint   = "Storage.URLEndpoint"
	KeyStorageUploadTimeout = "Storage.UploadTimeout"
)

// 定义所有已知的配置键，环境变量覆盖时逐一检查
var allKeys = []string{
	KeyServerPort, KeyServerDebug,
	KeyDBType, KeyDBHost, KeyDBPort, KeyDBUser, KeyDBPassword, KeyDBName, KeyDBDebug,
	KeyJWTSecret, KeyJWTExpireHours,
	KeyAdminUsername, KeyAdminPasswordHash,
	KeyStorageType, KeyStorageBucket, KeyStorageServer, KeyStorageAccessKey,
	KeyStorageSecretKey, KeyStoragePublicURL, KeyStoragePrivateKey,
	KeyStorageURLEndpoint, KeyStorageUploadTimeout,
}

type Config struct {
	vp *viper.Viper
}

// NewConfig 手动加载配置：先读取 data/conf.ini 作为默认值，再用环境变量覆盖。
// 配置文件不存在时自动创建一份默认配置。
func NewConfig() (*Config, error) {
	vp := viper.New()
	filePath := "data/conf.ini"

	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == "DEFAULT" {
					viperKey = key.Name()
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Println("从 data/conf.ini 文件加载了默认配置。")
	}

	// 环境变量覆盖，例如 SOLOBLOG_DATABASE_HOST 覆盖 Database.Host
	envReplacer := strings.NewReplacer(".", "_")
	envPrefix := "SOLOBLOG"

	for _, key := range allKeys {
		envVarName := fmt.Sprintf("%s_%s", envPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8091
Debug = false

[Database]
Type = sqlite
Name = soloblog.db
Debug = false

[JWT]
# 必填，留空时服务会拒绝启动
Secret =
ExpireHours = 24

[Admin]
Username = admin
# bcrypt 哈希，留空时启动会用默认密码 admin 生成并打印警告
PasswordHash =

[Storage]
# 存储后端类型: s3 或 imagekit
Type = s3
Bucket =
# S3: 区域名或完整 endpoint；ImageKit 不需要
Server =
AccessKey =
SecretKey =
# 公开访问域名（如 CDN 域名），留空时 S3 按 bucket 规则拼接
PublicURL =
# ImageKit 私钥，用于上传授权签名
PrivateKey =
# ImageKit URL Endpoint，如 https://ik.imagekit.io/yourid
URLEndpoint =
# 存储操作超时（秒）
UploadTimeout = 30
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}
