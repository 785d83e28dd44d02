package appointment

import "github.com/agendamed/scheduling-service/pkg/txmanager"

// DBExecutor is what the repository needs from the database. Both *sql.DB and
// the transaction carried by txmanager satisfy it.
type DBExecutor = txmanager.Executor
