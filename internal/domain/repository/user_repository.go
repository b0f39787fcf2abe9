package repository

import "github.com/tu-usuario/propiedades-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para UserAccount (DIP).
type UserRepository interface {
	Create(user *entity.UserAccount) error
	GetByID(id int64) (*entity.UserAccount, error)
	// GetActiveByID devuelve solo cuentas con is_active=true; nil si no existe o está inactiva.
	GetActiveByID(id int64) (*entity.UserAccount, error)
	GetByUsername(username string) (*entity.UserAccount, error)
	// ExistsByUsernameOrEmail verifica unicidad global de username/email.
	ExistsByUsernameOrEmail(username, email string, excludeID int64) (bool, error)
	Count() (int64, error)
	Update(user *entity.UserAccount) error
	List(limit, offset int) ([]*entity.UserAccount, error)
	Delete(id int64) error
}
