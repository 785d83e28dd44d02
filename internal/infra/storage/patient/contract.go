package patient

import "github.com/agendamed/scheduling-service/pkg/txmanager"

type DBExecutor = txmanager.Executor
