package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Bhavesh2823/Empora/internal/admin"
	"github.com/Bhavesh2823/Empora/internal/attendance"
	"github.com/Bhavesh2823/Empora/internal/client"
	"github.com/Bhavesh2823/Empora/internal/department"
	"github.com/Bhavesh2823/Empora/internal/employee"
	"github.com/Bhavesh2823/Empora/internal/leave"
	"github.com/Bhavesh2823/Empora/internal/messaging/kafka"
	"github.com/Bhavesh2823/Empora/internal/shared/fieldcrypto"
	"github.com/Bhavesh2823/Empora/internal/superuser"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

func registerModules(
	router *gin.Engine,
	registryDB *gorm.DB,
	rdb *redis.Client,
	codec *fieldcrypto.Codec,
	storeRouter *tenantdb.Router,
) error {
	logger := zap.L()

	sqlDB, err := registryDB.DB()
	if err != nil {
		return err
	}

	// --- Registry side ---
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	clientRepo := client.NewRepository(registryDB)
	allocator := client.NewAllocator(registryDB)
	provisioner := client.NewProvisioner(registryDB, storeRouter, clientRepo, codec)
	clientService := client.NewService(clientRepo, allocator, provisioner, codec, rdb, outboxRepo)
	clientHandler := client.NewHandler(clientService)

	superuserRepo := superuser.NewRepository(registryDB)
	superuserService := superuser.NewService(superuserRepo)
	superuserHandler := superuser.NewHandler(superuserService, logger)

	// --- Tenant side ---
	adminRepo := admin.NewRepository()
	adminService := admin.NewService(storeRouter, adminRepo, codec)
	adminHandler := admin.NewHandler(adminService, logger)

	departmentService := department.NewService(department.NewRepository())
	departmentHandler := department.NewHandler(departmentService, logger)

	employeeService := employee.NewService(employee.NewRepository(), codec)
	employeeHandler := employee.NewHandler(employeeService, logger)

	attendanceService := attendance.NewService(attendance.NewRepository())
	attendanceHandler := attendance.NewHandler(attendanceService, logger)

	leaveService := leave.NewService(leave.NewRepository())
	leaveHandler := leave.NewHandler(leaveService, logger)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		client.RegisterRoutes(api, clientHandler, rdb)
		superuser.RegisterRoutes(api, superuserHandler)
		admin.RegisterRoutes(api, adminHandler, storeRouter)
		department.RegisterRoutes(api, departmentHandler, storeRouter)
		employee.RegisterRoutes(api, employeeHandler, storeRouter)
		attendance.RegisterRoutes(api, attendanceHandler, storeRouter)
		leave.RegisterRoutes(api, leaveHandler, storeRouter)
	}

	return nil
}
