package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrInvalidRequest     = Error("invalid request")
	ErrInvalidParams      = Error("invalid params")
	ErrUnauthorized       = Error("unauthorized")
	ErrInvalidToken       = Error("invalid token")
	ErrWrongCredentials   = Error("wrong login or password")
	ErrUserNotFound       = Error("user not found")
	ErrUserBlocked        = Error("user is blocked")
	ErrGroupNotFound      = Error("group not found")
	ErrNotGroupMember     = Error("not a group member")
	ErrNotGroupOwner      = Error("only the group owner can do this")
	ErrMessageNotFound    = Error("message not found")
	ErrNotMessageSender   = Error("only own messages can be changed")
	ErrEmptyMessage       = Error("empty message")
	ErrInvalidChatType    = Error("chat type must be private or group")
	ErrCallYourself       = Error("cannot call yourself")
	ErrUnableToOpenFile   = Error("unable to open uploaded file")
	ErrUnableToUploadFile = Error("unable to upload file")
	ErrInvalidRoomID      = Error("invalid room id")
	ErrNoMessageAccess    = Error("no access to message")
	ErrNoFileUploaded     = Error("no file uploaded")
	ErrNoteAboutYourself  = Error("cannot keep a note about yourself")

	ErrConnectionClosed = Error("connection closed")
	ErrSendBufferFull   = Error("send buffer full")
)
