package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&CreditCard{},
		&Asset{},
		&Liability{},
		&BudgetAccount{},
		&Payee{},
		&CategoryGroup{},
		&Category{},
		&Transaction{},
		&Subtransaction{},
		&Link{},
		&SyncState{},
		&ProviderSettings{},
	)
}
