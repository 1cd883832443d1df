package msgs

const (
	MsgOperationSuccessful = "Operation successful"
	MsgOperationFailed     = "Operation failed"
	MsgYouMustLoginFirst   = "You must login first"
	MsgMessageSent         = "Message sent"
	MsgGroupCreated        = "Group created"
)
