package config

import "fmt"

// WorkerKeyStruct names the Redis lists drained by background workers.
type WorkerKeyStruct struct {
	NotifyOutboxQueue string
}

var WorkerKey = &WorkerKeyStruct{
	NotifyOutboxQueue: "notify_outbox_queue",
}

// ExamViolationChannel returns the Redis PubSub channel carrying proctoring
// violation events for one exam.
func ExamViolationChannel(examID int64) string {
	return fmt.Sprintf("exam:%d:violations", examID)
}
