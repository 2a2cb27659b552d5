package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"singular-attend/backend/config"
	"singular-attend/backend/internal/model"
	"singular-attend/backend/pkg/database"
	applogger "singular-attend/backend/pkg/logger"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "attendctl",
		Short: "考勤系统运维工具",
		Long:  "数据库迁移与初始数据填充的命令行工具",
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "配置文件路径")
	rootCmd.AddCommand(migrateCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openDB 加载配置并建立数据库连接
func openDB() (*gorm.DB, *config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	return db, cfg, logger, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "执行数据库迁移",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, logger, err := openDB()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.Database.Driver == "postgres" {
				sqlDB, err := db.DB()
				if err != nil {
					return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
				}
				return database.RunMigrations(sqlDB, logger)
			}
			return database.RunAutoMigrate(db, logger,
				&model.Admin{},
				&model.User{},
				&model.Category{},
				&model.Department{},
				&model.Holiday{},
				&model.Attendance{},
			)
		},
	}
}

func seedCmd() *cobra.Command {
	var adminUser, adminPass string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "填充初始数据（状态类别、部门、示例员工、管理员）",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, logger, err := openDB()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := seedCategories(db, logger); err != nil {
				return err
			}
			deptIDs, err := seedDepartments(db, logger)
			if err != nil {
				return err
			}
			if err := seedUsers(db, deptIDs, logger); err != nil {
				return err
			}
			if err := seedAdmin(db, adminUser, adminPass, logger); err != nil {
				return err
			}

			logger.Info("初始数据填充完成")
			return nil
		},
	}

	cmd.Flags().StringVar(&adminUser, "admin-user", "admin", "管理员用户名")
	cmd.Flags().StringVar(&adminPass, "admin-password", "", "管理员密码（为空则不创建管理员）")
	return cmd
}

// seedCategories 按短码幂等写入默认状态类别
func seedCategories(db *gorm.DB, logger *zap.Logger) error {
	defaults := []model.Category{
		{Code: "OS", Label: "On Site", Color: "bg-green-100 text-green-800 border-green-200", IsWorkDay: true, IsActive: true, SortOrder: 1},
		{Code: "T", Label: "Teleworking", Color: "bg-blue-100 text-blue-800 border-blue-200", IsWorkDay: true, IsActive: true, SortOrder: 2},
		{Code: "OOO", Label: "Out of Office", Color: "bg-yellow-100 text-yellow-800 border-yellow-200", IsWorkDay: false, IsActive: true, SortOrder: 3},
		{Code: "BT", Label: "Business Trip", Color: "bg-purple-100 text-purple-800 border-purple-200", IsWorkDay: true, IsActive: true, SortOrder: 4},
	}

	for _, cat := range defaults {
		var existing model.Category
		err := db.Where("code = ?", cat.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询类别 %s 失败: %w", cat.Code, err)
		}
		if err := db.Create(&cat).Error; err != nil {
			return fmt.Errorf("创建类别 %s 失败: %w", cat.Code, err)
		}
		logger.Info("已创建状态类别", zap.String("code", cat.Code), zap.String("label", cat.Label))
	}
	return nil
}

// seedDepartments 按名称幂等写入默认部门，返回 名称 → ID 映射
func seedDepartments(db *gorm.DB, logger *zap.Logger) (map[string]string, error) {
	names := []string{"R&D", "HR", "Sales", "Marketing"}
	ids := make(map[string]string, len(names))

	for _, name := range names {
		var existing model.Department
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			ids[name] = existing.DepartmentID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("查询部门 %s 失败: %w", name, err)
		}
		dept := model.Department{Name: name}
		if err := db.Create(&dept).Error; err != nil {
			return nil, fmt.Errorf("创建部门 %s 失败: %w", name, err)
		}
		ids[name] = dept.DepartmentID
		logger.Info("已创建部门", zap.String("name", name))
	}
	return ids, nil
}

// seedUsers 按员工编号幂等写入示例员工
func seedUsers(db *gorm.DB, deptIDs map[string]string, logger *zap.Logger) error {
	today := time.Now().Truncate(24 * time.Hour)

	samples := []struct {
		am, surname, name, dept string
	}{
		{"8818", "Dembani", "Rachid", "R&D"},
		{"1001", "Doe", "John", "Sales"},
	}

	for _, s := range samples {
		var existing model.User
		err := db.Where("am = ?", s.am).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询员工 %s 失败: %w", s.am, err)
		}
		user := model.User{
			AM:        s.am,
			Surname:   s.surname,
			Name:      s.name,
			StartDate: today,
		}
		if id, ok := deptIDs[s.dept]; ok {
			user.DepartmentID = &id
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("创建员工 %s 失败: %w", s.am, err)
		}
		logger.Info("已创建员工", zap.String("am", s.am), zap.String("surname", s.surname))
	}
	return nil
}

// seedAdmin 创建管理员账号；密码为空时跳过，已存在时不覆盖
func seedAdmin(db *gorm.DB, username, password string, logger *zap.Logger) error {
	if password == "" {
		logger.Info("未提供管理员密码，跳过管理员创建")
		return nil
	}

	var existing model.Admin
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		logger.Info("管理员已存在，跳过", zap.String("username", username))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("查询管理员失败: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}
	admin := model.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("创建管理员失败: %w", err)
	}
	logger.Info("已创建管理员", zap.String("username", username))
	return nil
}
