package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
)

type fakeRepo struct {
	byEmail map[string]*Operator
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byEmail: map[string]*Operator{}} }

func (f *fakeRepo) Create(_ context.Context, o *Operator) error {
	cp := *o
	f.byEmail[o.Email] = &cp
	return nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*Operator, error) {
	o, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("operator", email)
	}
	cp := *o
	return &cp, nil
}

func (f *fakeRepo) Count(_ context.Context) (int, error) {
	return len(f.byEmail), nil
}

func newTestService(repo Repository) *service {
	// token expiry is checked against the wall clock during parsing, so the
	// issuing clock has to be the real one
	return &service{repo: repo, jwtSecret: []byte("test-secret"), now: time.Now}
}

func TestRegister_BootstrapOnly(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "Ana@Shop.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if first.Email != "ana@shop.com" {
		t.Fatalf("email not normalised: %s", first.Email)
	}
	if first.PasswordHash == "hunter2hunter2" {
		t.Fatal("password stored in the clear")
	}

	_, err = svc.Register(ctx, RegisterRequest{Name: "Bia", Email: "bia@shop.com", Password: "hunter2hunter2"})
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@b.com", Password: "longenough"}},
		{"missing email", RegisterRequest{Name: "Ana", Password: "longenough"}},
		{"short password", RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.req); !apperror.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLoginAndVerifyToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	op, err := svc.Register(ctx, RegisterRequest{Name: "Ana", Email: "ana@shop.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := svc.Login(ctx, LoginRequest{Email: "ana@shop.com", Password: "hunter2hunter2"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	subject, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if subject != op.ID.String() {
		t.Fatalf("token subject = %s, want %s", subject, op.ID)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "ana@shop.com", Password: "wrong"}); err == nil {
		t.Fatal("wrong password accepted")
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@shop.com", Password: "hunter2hunter2"}); err == nil {
		t.Fatal("unknown email accepted")
	}
	if _, err := svc.VerifyToken("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
