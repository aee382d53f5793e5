package config

type WorkerKeyStruct struct {
	ExtractDocumentsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ExtractDocumentsQueue: "extract_documents_queue",
}
