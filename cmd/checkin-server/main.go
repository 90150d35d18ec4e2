package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/config"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/routes"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/utils"
)

func main() {
	appConfig := config.Load()

	db, err := setupDatabase(appConfig)
	if err != nil {
		log.Fatalf("Falha na conexão com o banco de dados: %v", err)
	}

	router := setupRouter(db, appConfig)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Servidor iniciado na porta %s\n", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Falha ao iniciar o servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Encerrando o servidor...")
}

func setupDatabase(config *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(config.DBPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.Operator{},
		&models.Military{},
		&models.Credential{},
		&models.AccessRequest{},
		&models.AccessEvent{},
		&models.Checkpoint{},
	); err != nil {
		return nil, fmt.Errorf("falha na migração do banco de dados: %w", err)
	}

	if err := createInitialData(db, config); err != nil {
		return nil, fmt.Errorf("falha ao criar os dados iniciais: %w", err)
	}

	return db, nil
}

func createInitialData(db *gorm.DB, config *config.Config) error {
	var adminCount int64
	if err := db.Model(&models.Operator{}).Where("is_admin = ?", true).Count(&adminCount).Error; err != nil {
		return err
	}

	if adminCount == 0 {
		var existingOperator models.Operator
		result := db.Where("username = ?", config.AdminUsername).First(&existingOperator)

		if result.Error == nil {
			existingOperator.IsAdmin = true
			if err := db.Save(&existingOperator).Error; err != nil {
				return err
			}
			log.Println("Operador existente promovido a administrador:", config.AdminUsername)
		} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			admin := models.Operator{
				Username: config.AdminUsername,
				Password: config.AdminPassword,
				FullName: getEnv("ADMIN_FULL_NAME", "Administrador do Sistema"),
				Email:    getEnv("ADMIN_EMAIL", "admin@checkin.eb.mil.br"),
				IsAdmin:  true,
				Active:   true,
			}

			if err := db.Create(&admin).Error; err != nil {
				return err
			}
			log.Printf("Operador administrador padrão criado (usuário: %s)\n", config.AdminUsername)
		} else {
			return result.Error
		}
	}

	var checkpointCount int64
	if err := db.Model(&models.Checkpoint{}).Count(&checkpointCount).Error; err != nil {
		return err
	}

	if checkpointCount == 0 {
		checkpoints := []models.Checkpoint{
			{
				Name:        "Portão A",
				Description: "Entrada principal do quartel",
				Active:      true,
			},
			{
				Name:        "Portão B",
				Description: "Entrada de viaturas",
				Active:      true,
			},
			{
				Name:        "Guarita",
				Description: "Posto de controle da guarda",
				Active:      true,
			},
		}

		for _, checkpoint := range checkpoints {
			if err := db.Create(&checkpoint).Error; err != nil {
				return err
			}
		}
		log.Println("Pontos de controle padrão criados")
	}

	var militaryCount int64
	if err := db.Model(&models.Military{}).Count(&militaryCount).Error; err != nil {
		return err
	}

	if militaryCount == 0 {
		militaries := []models.Military{
			{
				FullName: "Maria Silva",
				Rank:     "Sargento",
				Function: "Auxiliar de comunicações",
				Unit:     "1ª Companhia",
				Status:   models.MilitaryStatusActive,
			},
			{
				FullName: "João Pereira",
				Rank:     "Cabo",
				Function: "Motorista",
				Unit:     "2ª Companhia",
				Status:   models.MilitaryStatusActive,
			},
			{
				FullName: "Carlos Andrade",
				Rank:     "Tenente",
				Function: "Oficial de dia",
				Unit:     "Estado-Maior",
				Status:   models.MilitaryStatusActive,
			},
			{
				FullName: "Ana Costa",
				Rank:     "Soldado",
				Unit:     "3ª Companhia",
				Status:   models.MilitaryStatusOnLeave,
			},
		}

		for _, military := range militaries {
			if err := db.Create(&military).Error; err != nil {
				return err
			}
		}
		log.Println("Militares de demonstração criados")

		lifecycle := utils.NewLifecycleService(db)
		for _, military := range militaries[:3] {
			var record models.Military
			if err := db.Where("full_name = ?", military.FullName).First(&record).Error; err != nil {
				continue
			}
			if _, err := lifecycle.IssueCredential(record.ID); err != nil {
				log.Printf("Falha ao emitir credencial de demonstração para %s: %v\n", record.FullName, err)
			}
		}
		log.Println("Credenciais de demonstração emitidas")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func setupRouter(db *gorm.DB, config *config.Config) *gin.Engine {
	router := routes.SetupRouter(db, config)
	return router
}
