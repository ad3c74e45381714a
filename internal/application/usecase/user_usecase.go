package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/gestor-pruebas-api/internal/application/dto"
	"github.com/jhoicas/gestor-pruebas-api/internal/application/ports"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/entity"
	"github.com/jhoicas/gestor-pruebas-api/internal/domain/repository"
	"github.com/jhoicas/gestor-pruebas-api/pkg/logger"
)

const msgUIDRequerido = "El UID del usuario es requerido."

// UserUseCase administra usuarios en dos sistemas: la cuenta en el servicio de
// identidad y el perfil en la colección "users".
//
// Las operaciones que tocan ambos sistemas son secuenciales. Si el segundo paso
// falla se ejecuta un paso compensatorio que deshace el primero, de modo que
// Estado del perfil y disabled de la cuenta no queden divergentes.
type UserUseCase struct {
	users    repository.UserRepository
	identity ports.IdentityService
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso con el repositorio de perfiles y el servicio de identidad.
func NewUserUseCase(users repository.UserRepository, identity ports.IdentityService, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, identity: identity, log: log.Named("usuarios")}
}

// Create crea la cuenta (displayName "nombre apellido") y luego el perfil con id = uid.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.CreatedUser, error) {
	if in.Email == "" || in.Password == "" || in.Nombre == "" || in.Apellido == "" || in.Rol == "" || in.Estado == nil {
		return nil, domain.NewValidationError("Todos los campos son requeridos: email, password, nombre, apellido, rol, estado.")
	}
	user := &entity.User{
		Nombre:   in.Nombre,
		Apellido: in.Apellido,
		Email:    in.Email,
		Rol:      in.Rol,
		Estado:   *in.Estado,
	}
	uid, err := uc.identity.CreateAccount(ctx, ports.NewAccount{
		Email:       in.Email,
		Password:    in.Password,
		DisplayName: user.FullName(),
	})
	if err != nil {
		return nil, fmt.Errorf("crear cuenta: %w", err)
	}
	user.UID = uid

	// Un usuario creado inactivo debe quedar deshabilitado también en el proveedor.
	if !user.Estado {
		if err := uc.identity.SetDisabled(ctx, uid, true); err != nil {
			uc.compensate(ctx, uid, "eliminar cuenta recién creada", func(ctx context.Context) error {
				return uc.identity.DeleteAccount(ctx, uid)
			})
			return nil, fmt.Errorf("deshabilitar cuenta: %w", err)
		}
	}

	if err := uc.users.Save(ctx, user); err != nil {
		uc.compensate(ctx, uid, "eliminar cuenta sin perfil", func(ctx context.Context) error {
			return uc.identity.DeleteAccount(ctx, uid)
		})
		return nil, fmt.Errorf("guardar perfil: %w", err)
	}
	return &dto.CreatedUser{UID: uid}, nil
}

// Deactivate deshabilita la cuenta y marca estado=false en el perfil.
func (uc *UserUseCase) Deactivate(ctx context.Context, uid string) error {
	return uc.setEstado(ctx, uid, false)
}

// Reactivate habilita la cuenta y marca estado=true en el perfil.
func (uc *UserUseCase) Reactivate(ctx context.Context, uid string) error {
	return uc.setEstado(ctx, uid, true)
}

func (uc *UserUseCase) setEstado(ctx context.Context, uid string, estado bool) error {
	if uid == "" {
		return domain.NewValidationError(msgUIDRequerido)
	}
	user, err := uc.users.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := uc.identity.SetDisabled(ctx, uid, !estado); err != nil {
		return fmt.Errorf("actualizar cuenta: %w", err)
	}
	if err := uc.users.SetEstado(ctx, uid, estado); err != nil {
		uc.compensate(ctx, uid, "restaurar disabled de la cuenta", func(ctx context.Context) error {
			return uc.identity.SetDisabled(ctx, uid, !user.Estado)
		})
		return fmt.Errorf("actualizar estado del perfil: %w", err)
	}
	return nil
}

// GetByID devuelve el perfil del usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, uid string) (*dto.UserResponse, error) {
	if uid == "" {
		return nil, domain.NewValidationError(msgUIDRequerido)
	}
	user, err := uc.users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// List devuelve todos los perfiles. ErrNotFound si la colección está vacía.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

// Delete elimina el perfil y después la cuenta. Si la cuenta no se puede
// eliminar, el perfil se restaura. Una cuenta sin perfil también se elimina;
// ErrNotFound solo si no existe ninguno de los dos.
func (uc *UserUseCase) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return domain.NewValidationError(msgUIDRequerido)
	}
	user, err := uc.users.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	if user == nil {
		if err := uc.identity.DeleteAccount(ctx, uid); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("eliminar cuenta: %w", err)
		}
		uc.log.Info().Str("uid", uid).Msg("cuenta sin perfil eliminada")
		return nil
	}
	if err := uc.users.Delete(ctx, uid); err != nil {
		return fmt.Errorf("eliminar perfil: %w", err)
	}
	if err := uc.identity.DeleteAccount(ctx, uid); err != nil {
		uc.compensate(ctx, uid, "restaurar perfil eliminado", func(ctx context.Context) error {
			return uc.users.Save(ctx, user)
		})
		return fmt.Errorf("eliminar cuenta: %w", err)
	}
	return nil
}

// Edit aplica el parche al perfil y replica email/displayName en la cuenta.
// Un parche vacío no hace nada.
func (uc *UserUseCase) Edit(ctx context.Context, in dto.EditUserRequest) error {
	if in.UID == "" {
		return domain.NewValidationError(msgUIDRequerido)
	}
	user, err := uc.users.GetByID(ctx, in.UID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if in.UserPatch.IsEmpty() {
		return nil
	}
	if err := uc.users.Update(ctx, in.UID, in.UserPatch); err != nil {
		return fmt.Errorf("actualizar perfil: %w", err)
	}

	account := ports.AccountUpdate{Email: in.Email, DisplayName: in.DisplayName}
	if account.IsEmpty() {
		return nil
	}
	if err := uc.identity.UpdateAccount(ctx, in.UID, account); err != nil {
		revert := in.UserPatch.Revert(user)
		uc.compensate(ctx, in.UID, "revertir cambios del perfil", func(ctx context.Context) error {
			return uc.users.Update(ctx, in.UID, revert)
		})
		return fmt.Errorf("actualizar cuenta: %w", err)
	}
	return nil
}

// compensate ejecuta un paso compensatorio aunque la petición ya esté cancelada.
// Si falla, solo queda registrado: los dos sistemas quedan divergentes.
func (uc *UserUseCase) compensate(ctx context.Context, uid, action string, fn func(context.Context) error) {
	if err := fn(context.WithoutCancel(ctx)); err != nil {
		uc.log.Error().Err(err).Str("uid", uid).Str("accion", action).
			Msg("compensación fallida: cuenta y perfil quedaron inconsistentes")
		return
	}
	uc.log.Warn().Str("uid", uid).Str("accion", action).Msg("compensación aplicada")
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.UID,
		UID:         u.UID,
		Nombre:      u.Nombre,
		Apellido:    u.Apellido,
		Email:       u.Email,
		Rol:         u.Rol,
		Estado:      u.Estado,
		DisplayName: u.DisplayName,
	}
}
