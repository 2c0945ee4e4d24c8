package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Tougashi/Stunting-sub001/model"
	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestUserService(t *testing.T, name string) *UserService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return &UserService{
		Repo:   model.NewUserRepo(db),
		Tokens: &TokenService{Secret: "test-secret"},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestUserService(t, "user_register")
	ctx := context.Background()

	user := &User{Username: "bunda", Email: "bunda@example.com", Password: "Rahasia123!"}
	if err := svc.Register(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, &User{Username: "bunda", Password: "Rahasia123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected an access token")
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	svc := newTestUserService(t, "user_duplicate")
	ctx := context.Background()

	user := &User{Username: "bunda", Email: "bunda@example.com", Password: "Rahasia123!"}
	if err := svc.Register(ctx, user); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.Register(ctx, user); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestUserService(t, "user_wrongpass")
	ctx := context.Background()

	user := &User{Username: "bunda", Email: "bunda@example.com", Password: "Rahasia123!"}
	if err := svc.Register(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, &User{Username: "bunda", Password: "salah"}); err == nil {
		t.Fatalf("expected login to fail with wrong password")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestUserService(t, "user_unknown")

	if _, err := svc.Login(context.Background(), &User{Username: "ghost", Password: "x"}); err == nil {
		t.Fatalf("expected login to fail for unknown user")
	}
}
