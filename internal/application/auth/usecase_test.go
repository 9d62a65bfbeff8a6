package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelvistamar/inventario-api/internal/application/auth"
	"github.com/hotelvistamar/inventario-api/internal/application/dto"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

var errRepo = errors.New("falló la base")

type memUserRepo struct {
	users map[string]*entity.User
	// findErr fuerza un fallo en FindByEmail.
	findErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func newAuthUC(repo *memUserRepo) *auth.UseCase {
	return auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "inventario-test",
	})
}

func registro() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "bodega@hotel.cl",
		Password: "clave-segura",
		Name:     "Bodeguero Turno A",
		Role:     entity.RoleBodeguero,
	}
}

func TestRegister_OK(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	out, err := uc.Register(registro())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, out.Role)
	assert.True(t, out.Active)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	_, err := uc.Register(registro())
	require.NoError(t, err)

	_, err = uc.Register(registro())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_FalloDelRepoSePropaga(t *testing.T) {
	repo := newMemUserRepo()
	repo.findErr = errRepo
	uc := newAuthUC(repo)

	_, err := uc.Register(registro())
	assert.ErrorIs(t, err, errRepo,
		"un fallo transitorio no puede leerse como 'email disponible'")
}

func TestRegister_RolInvalido(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	in := registro()
	in.Role = "gerente"
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_PasswordIncorrecta_Unauthorized(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	_, err := uc.Register(registro())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "bodega@hotel.cl", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_OK_EmiteToken(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	_, err := uc.Register(registro())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "bodega@hotel.cl", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "bodega@hotel.cl", out.User.Email)
}
