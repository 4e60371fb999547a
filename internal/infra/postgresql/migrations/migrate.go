package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/kyungmin-dev/taskbell/internal/repository"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "000001_create_tasks",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.TaskModel{}); err != nil {
					return err
				}
				indexes := []string{
					`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`,
					`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks (due_date) WHERE due_date IS NOT NULL`,
					`CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks (priority)`,
				}
				for _, sql := range indexes {
					if err := tx.Exec(sql).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.TaskModel{})
			},
		},
		{
			ID: "000002_create_contacts",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.ContactModel{}); err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_contacts_contact_date ON contacts (contact_date)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.ContactModel{})
			},
		},
		{
			ID: "000003_create_memos",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&repository.MemoModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.MemoModel{})
			},
		},
		{
			ID: "000004_create_notification_channels",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&repository.ChannelModel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.ChannelModel{})
			},
		},
		{
			ID: "000005_create_delivery_logs",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&repository.DeliveryLogModel{}); err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_delivery_logs_created_at ON delivery_logs (created_at)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&repository.DeliveryLogModel{})
			},
		},
	})

	return m.Migrate()
}
