package routes

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/advdv/bapi"
	"github.com/advdv/bapi/bapp"
	"github.com/advdv/bapi/internal/schema"
	"go.uber.org/zap"
)

const (
	maxUserID  = 100
	validToken = "valid_token"
	newUserID  = 100
)

var takenUsernames = []string{"admin", "root"}

// RegisterExamples registers the endpoints that demonstrate success and failure envelopes.
func RegisterExamples(r bapi.Router, dev bool) {
	r.HandleFunc("GET /users/{user_id}", getUser, "get-user")
	r.HandleFunc("POST /users", createUser, "create-user")
	r.HandleFunc("DELETE /users/{user_id}", deleteUser, "delete-user")

	if dev {
		r.HandleFunc("GET /boom", boom, "boom")
	}
}

func getUser(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error {
	id, err := bapi.PathInt(r, "user_id", 1)
	if err != nil {
		return err
	}

	if id > maxUserID {
		bapp.Log(ctx).Warn("user not found", zap.Int("user_id", id))
		return userNotFound(id)
	}

	age := 20 + id
	return bapi.Render(w, schema.User{ID: id, Username: fmt.Sprintf("user_%d", id), Age: &age}, "")
}

func createUser(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error {
	var in schema.UserCreate
	if err := bapi.Bind(r, &in); err != nil {
		return err
	}

	if slices.Contains(takenUsernames, in.Username) {
		return bapi.BadRequest(fmt.Sprintf("用户名 %s 已被占用", in.Username))
	}

	bapp.Log(ctx).Info("user created", zap.String("username", in.Username))
	return bapi.Render(w, schema.User{ID: newUserID, Username: in.Username, Age: in.Age}, "用户创建成功")
}

func deleteUser(_ context.Context, w bapi.ResponseWriter, r *http.Request) error {
	id, err := bapi.PathInt(r, "user_id", 1)
	if err != nil {
		return err
	}

	switch token := r.URL.Query().Get("token"); {
	case token == "":
		return bapi.Unauthorized("未授权，请提供 token 参数")
	case token != validToken:
		return bapi.Unauthorized("token 无效")
	case id > maxUserID:
		return userNotFound(id)
	}

	return bapi.WriteEnvelope(w, bapi.Empty().WithMessage("用户删除成功"))
}

// boom fails outside of the error taxonomy.
func boom(context.Context, bapi.ResponseWriter, *http.Request) error {
	panic("boom")
}

func userNotFound(id int) error {
	return bapi.NotFound(fmt.Sprintf("用户 %d 不存在", id))
}
