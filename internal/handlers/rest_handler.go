package handlers

import (
	"errors"
	"log"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"mgMessenger/internal/msgs"
	"mgMessenger/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RestHandler struct {
	authService     *services.AuthenticationService
	chatService     *services.ChatService
	groupService    *services.GroupService
	callService     *services.CallService
	presenceService *services.PresenceService
	userService     *services.UserService
	fileService     *services.FileManagerService
}

func NewRestHandler(
	authService *services.AuthenticationService,
	chatService *services.ChatService,
	groupService *services.GroupService,
	callService *services.CallService,
	presenceService *services.PresenceService,
	userService *services.UserService,
	fileService *services.FileManagerService,
) *RestHandler {
	return &RestHandler{
		authService:     authService,
		chatService:     chatService,
		groupService:    groupService,
		callService:     callService,
		presenceService: presenceService,
		userService:     userService,
		fileService:     fileService,
	}
}

// Login godoc
// @Summary      Login user to account
// @Description  Exchange login and password for a bearer token
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequestBody  true  "Credentials"
// @Success      200   {object}  models.Response{data=models.LoginResponse}
// @Failure      400   {object}  models.Response
// @Failure      401   {object}  models.Response
// @Router       /api/auth/login [post]
func (rh *RestHandler) Login(ctx *gin.Context) {
	var loginData models.LoginRequestBody
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		log.Println("Error login data json binding:", err)
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		abortWithServiceErrors(ctx, loginErrs)
		return
	}

	respondSuccess(ctx, msgs.MsgOperationSuccessful, loginResponse)
}

// Me godoc
// @Summary      Current user profile
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Response{data=models.ProfileResponse}
// @Failure      401  {object}  models.Response
// @Router       /api/me [get]
func (rh *RestHandler) Me(ctx *gin.Context) {
	respondSuccess(ctx, msgs.MsgOperationSuccessful, currentUser(ctx).ToProfileResponse())
}

// UpdateMe godoc
// @Summary      Update own profile
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.ProfileUpdateRequest  true  "Profile"
// @Success      200   {object}  models.Response{data=models.ProfileResponse}
// @Failure      400   {object}  models.Response
// @Router       /api/me [put]
func (rh *RestHandler) UpdateMe(ctx *gin.Context) {
	var request models.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}
	profile, profileErrs := rh.userService.UpdateProfile(currentUser(ctx), &request)
	if len(profileErrs) > 0 {
		abortWithServiceErrors(ctx, profileErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, profile)
}

// ChangePassword godoc
// @Summary      Change own password
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.ChangePasswordRequest  true  "New password"
// @Success      200   {object}  models.Response
// @Failure      400   {object}  models.Response
// @Router       /api/auth/change-password [post]
func (rh *RestHandler) ChangePassword(ctx *gin.Context) {
	var request models.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}
	if passwordErrs := rh.userService.ChangePassword(currentUser(ctx), &request); len(passwordErrs) > 0 {
		abortWithServiceErrors(ctx, passwordErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, nil)
}

// SearchUsers godoc
// @Summary      Search users
// @Description  Visible users matching the query by name, phone, email or login
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  models.Response{data=[]models.UserShortResponse}
// @Router       /api/users/search [get]
func (rh *RestHandler) SearchUsers(ctx *gin.Context) {
	users, searchErrs := rh.userService.Search(currentUser(ctx), ctx.Query("q"))
	if len(searchErrs) > 0 {
		abortWithErrors(ctx, http.StatusInternalServerError, searchErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, users)
}

// GetUserInfo godoc
// @Summary      User card
// @Description  Public profile of a user with the caller's private note about them
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string  true  "User login"
// @Success      200    {object}  models.Response{data=models.UserInfoResponse}
// @Failure      404    {object}  models.Response
// @Router       /api/users/{login} [get]
func (rh *RestHandler) GetUserInfo(ctx *gin.Context) {
	info, infoErrs := rh.userService.GetUserInfo(currentUser(ctx), ctx.Param("login"))
	if len(infoErrs) > 0 {
		abortWithServiceErrors(ctx, infoErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, info)
}

// SetUserNote godoc
// @Summary      Set private note about a user
// @Description  An empty note removes it
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string                  true  "User login"
// @Param        body   body      models.UserNoteRequest  true  "Note"
// @Success      200    {object}  models.Response{data=models.UserNoteResponse}
// @Failure      400    {object}  models.Response
// @Failure      404    {object}  models.Response
// @Router       /api/users/{login}/note [put]
func (rh *RestHandler) SetUserNote(ctx *gin.Context) {
	var request models.UserNoteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}
	note, noteErrs := rh.userService.SetUserNote(currentUser(ctx), ctx.Param("login"), &request)
	if len(noteErrs) > 0 {
		abortWithServiceErrors(ctx, noteErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, note)
}

// GetPresence godoc
// @Summary      Online status of a user
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string  true  "User login"
// @Success      200    {object}  models.Response{data=services.PresenceStatus}
// @Failure      500    {object}  models.Response
// @Router       /api/users/{login}/presence [get]
func (rh *RestHandler) GetPresence(ctx *gin.Context) {
	status, err := rh.presenceService.GetStatus(ctx.Param("login"))
	if err != nil {
		log.Printf("GetPresence - redis: %v", err)
		abortWithErrors(ctx, http.StatusInternalServerError, []error{errs.ErrInvalidRequest})
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, status)
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Send a private or group message with an optional file
// @Tags         messages
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        chat_type  formData  string  true   "private or group"
// @Param        target     formData  string  true   "Partner login or group id"
// @Param        text       formData  string  false  "Message text"
// @Param        file       formData  file    false  "Attachment"
// @Success      200        {object}  models.Response
// @Failure      400        {object}  models.Response
// @Failure      403        {object}  models.Response
// @Failure      404        {object}  models.Response
// @Router       /api/messages [post]
func (rh *RestHandler) SendMessage(ctx *gin.Context) {
	var request models.SendMessageRequest
	if err := ctx.ShouldBind(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}

	var attachment *services.Attachment
	fileHeader, err := ctx.FormFile("file")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			log.Printf("SendMessage - open upload: %v", openErr)
			abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrUnableToOpenFile})
			return
		}
		defer file.Close()
		attachment = &services.Attachment{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      file,
		}
	case !errors.Is(err, http.ErrMissingFile):
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrUnableToOpenFile})
		return
	}

	if sendErrs := rh.chatService.SendMessage(ctx.Request.Context(), currentUser(ctx), &request, attachment); len(sendErrs) > 0 {
		abortWithServiceErrors(ctx, sendErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgMessageSent, nil)
}

// EditMessage godoc
// @Summary      Edit own message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Message id"
// @Param        body  body      models.MessageEditRequest  true  "New text"
// @Success      200   {object}  models.Response
// @Failure      403   {object}  models.Response
// @Failure      404   {object}  models.Response
// @Router       /api/messages/{id} [put]
func (rh *RestHandler) EditMessage(ctx *gin.Context) {
	messageID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var request models.MessageEditRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}

	if editErrs := rh.chatService.EditMessage(currentUser(ctx), messageID, request.Text); len(editErrs) > 0 {
		abortWithServiceErrors(ctx, editErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, nil)
}

// DeleteMessage godoc
// @Summary      Delete own message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  models.Response
// @Failure      403  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /api/messages/{id} [delete]
func (rh *RestHandler) DeleteMessage(ctx *gin.Context) {
	messageID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if deleteErrs := rh.chatService.DeleteMessage(currentUser(ctx), messageID); len(deleteErrs) > 0 {
		abortWithServiceErrors(ctx, deleteErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, nil)
}

// ForwardMessage godoc
// @Summary      Forward a message
// @Description  Copy a readable message into a private or group chat
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Message id"
// @Param        body  body      models.MessageForwardRequest  true  "Destination"
// @Success      200   {object}  models.Response
// @Failure      403   {object}  models.Response
// @Failure      404   {object}  models.Response
// @Router       /api/messages/{id}/forward [post]
func (rh *RestHandler) ForwardMessage(ctx *gin.Context) {
	messageID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var request models.MessageForwardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}
	if forwardErrs := rh.chatService.ForwardMessage(currentUser(ctx), messageID, &request); len(forwardErrs) > 0 {
		abortWithServiceErrors(ctx, forwardErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgMessageSent, nil)
}

// UploadFile godoc
// @Summary      Upload a file
// @Description  Stores a file and returns its public url
// @Tags         files
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File"
// @Success      200   {object}  models.Response{data=models.UploadResponse}
// @Failure      400   {object}  models.Response
// @Router       /api/upload [post]
func (rh *RestHandler) UploadFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrNoFileUploaded})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("UploadFile - open upload: %v", err)
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrUnableToOpenFile})
		return
	}
	defer file.Close()

	url, mime, err := rh.fileService.UploadAttachment(ctx.Request.Context(), fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("UploadFile - upload failed: %v", err)
		abortWithErrors(ctx, http.StatusInternalServerError, []error{errs.ErrUnableToUploadFile})
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, models.UploadResponse{URL: url, Mime: mime})
}

// GetMessages godoc
// @Summary      Chat history
// @Description  Messages of a chat, oldest first. Marks incoming ones as read.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        chat_type  query     string  true  "private or group"
// @Param        target     query     string  true  "Partner login or group id"
// @Success      200        {object}  models.Response{data=[]models.MessageResponse}
// @Failure      400        {object}  models.Response
// @Router       /api/messages [get]
func (rh *RestHandler) GetMessages(ctx *gin.Context) {
	messages, historyErrs := rh.chatService.History(currentUser(ctx), ctx.Query("chat_type"), ctx.Query("target"))
	if len(historyErrs) > 0 {
		abortWithServiceErrors(ctx, historyErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, messages)
}

// GetActiveChats godoc
// @Summary      Active chats
// @Description  Private and group chats with the latest message preview and unread count
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Response{data=models.ActiveChatsResponse}
// @Router       /api/chats/active [get]
func (rh *RestHandler) GetActiveChats(ctx *gin.Context) {
	chats, chatErrs := rh.chatService.ActiveChats(currentUser(ctx))
	if len(chatErrs) > 0 {
		abortWithErrors(ctx, http.StatusInternalServerError, chatErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, chats)
}

// CreateGroup godoc
// @Summary      Create group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.GroupCreateRequest  true  "Group"
// @Success      200   {object}  models.Response{data=models.GroupResponse}
// @Failure      400   {object}  models.Response
// @Router       /api/groups [post]
func (rh *RestHandler) CreateGroup(ctx *gin.Context) {
	var request models.GroupCreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}

	group, groupErrs := rh.groupService.CreateGroup(currentUser(ctx), &request)
	if len(groupErrs) > 0 {
		abortWithServiceErrors(ctx, groupErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgGroupCreated, group)
}

// UpdateGroup godoc
// @Summary      Update group
// @Description  Rename the group or replace its members. Owner only.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Group id"
// @Param        body  body      models.GroupUpdateRequest  true  "Changes"
// @Success      200   {object}  models.Response{data=models.GroupResponse}
// @Failure      403   {object}  models.Response
// @Failure      404   {object}  models.Response
// @Router       /api/groups/{id} [put]
func (rh *RestHandler) UpdateGroup(ctx *gin.Context) {
	groupID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var request models.GroupUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}

	group, groupErrs := rh.groupService.UpdateGroup(currentUser(ctx), groupID, &request)
	if len(groupErrs) > 0 {
		abortWithServiceErrors(ctx, groupErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, group)
}

// TransferGroupOwner godoc
// @Summary      Transfer group ownership
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                            true  "Group id"
// @Param        body  body      models.GroupOwnerTransferRequest  true  "New owner"
// @Success      200   {object}  models.Response{data=models.GroupResponse}
// @Failure      403   {object}  models.Response
// @Failure      404   {object}  models.Response
// @Router       /api/groups/{id}/owner [post]
func (rh *RestHandler) TransferGroupOwner(ctx *gin.Context) {
	groupID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var request models.GroupOwnerTransferRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}

	group, groupErrs := rh.groupService.TransferOwner(currentUser(ctx), groupID, &request)
	if len(groupErrs) > 0 {
		abortWithServiceErrors(ctx, groupErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, group)
}

// DeleteGroup godoc
// @Summary      Delete group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Group id"
// @Success      200  {object}  models.Response
// @Failure      403  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /api/groups/{id} [delete]
func (rh *RestHandler) DeleteGroup(ctx *gin.Context) {
	groupID, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if groupErrs := rh.groupService.DeleteGroup(currentUser(ctx), groupID); len(groupErrs) > 0 {
		abortWithServiceErrors(ctx, groupErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, nil)
}

// InviteCall godoc
// @Summary      Ring a user
// @Description  Pushes call:invite to every live connection of the target
// @Tags         calls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.CallInviteRequest  true  "Target"
// @Success      200   {object}  models.Response
// @Failure      400   {object}  models.Response
// @Failure      404   {object}  models.Response
// @Router       /api/calls/invite [post]
func (rh *RestHandler) InviteCall(ctx *gin.Context) {
	var request models.CallInviteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidRequestBody})
		return
	}
	if inviteErrs := rh.callService.Invite(currentUser(ctx), &request); len(inviteErrs) > 0 {
		abortWithServiceErrors(ctx, inviteErrs)
		return
	}
	respondSuccess(ctx, msgs.MsgOperationSuccessful, nil)
}

func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		abortWithErrors(ctx, http.StatusBadRequest, []error{errs.ErrInvalidParams})
		return uuid.Nil, false
	}
	return id, true
}
