package specialty

import "github.com/agendamed/scheduling-service/pkg/txmanager"

type DBExecutor = txmanager.Executor
