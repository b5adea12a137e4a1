package migrations

import (
	"namogange/app/models/activity"
	"namogange/app/models/agspayment"
	"namogange/app/models/bank"
	"namogange/pkg/regno"
)

// RegisterTables 需要迁移的表
func RegisterTables() []interface{} {
	return []interface{}{
		&agspayment.AGSPayment{},
		&bank.Bank{},
		&activity.Log{},
		&regno.SequenceRow{},
	}
}
