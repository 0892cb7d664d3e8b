package main

type NoticeKind string

const (
	NoticeAlert NoticeKind = "alert"
	NoticeInfo  NoticeKind = "info"
)

type NotifierInterface interface {
	// Alert is a blocking notice the user has to see before continuing.
	Alert(message string)
	// Info is a transient notice.
	Info(message string)
	Confirm(question string) bool
}

type NoticeMirrorInterface interface {
	Mirror(kind NoticeKind, message string) error
}
