package config

type WorkerKeyStruct struct {
	ContactMessagesQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ContactMessagesQueue: "contact_messages_queue",
}
