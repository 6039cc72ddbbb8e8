package config

type WorkerKeyStruct struct {
	RetentionLock string
}

var WorkerKey = &WorkerKeyStruct{
	RetentionLock: "worker:retention:lock",
}
