package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_batch.sql
var RegisterBatch string

//go:embed queries/finalize_batch.sql
var FinalizeBatch string

//go:embed queries/supersede_batches.sql
var SupersedeBatches string

//go:embed queries/delete_batch.sql
var DeleteBatch string

//go:embed queries/department_totals.sql
var DepartmentTotals string
