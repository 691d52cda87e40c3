// internal/domain/user/address_service.go
package user

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// AddressService handles address business logic
type AddressService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB, cfg *config.Config) *AddressService {
	return &AddressService{
		db:     db,
		config: cfg,
	}
}

// CreateAddressRequest represents address creation data
type CreateAddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

// UpdateAddressRequest represents address update data
type UpdateAddressRequest struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	IsDefault  *bool   `json:"is_default"`
}

// GetUserAddresses retrieves all addresses for a user, default first
func (s *AddressService) GetUserAddresses(userID uint) ([]Address, error) {
	var addresses []Address
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}
	return addresses, nil
}

// GetAddress retrieves a specific address for a user
func (s *AddressService) GetAddress(userID, addressID uint) (*Address, error) {
	var address Address
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("address not found")
		}
		return nil, fmt.Errorf("failed to retrieve address: %w", result.Error)
	}

	return &address, nil
}

// CreateAddress creates a new address for a user and returns the full list.
// Setting IsDefault unsets every other default inside the same transaction, so
// callers never observe zero or multiple defaults.
func (s *AddressService) CreateAddress(userID uint, req *CreateAddressRequest) ([]Address, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.IsDefault {
		if err := s.unsetDefaultAddresses(tx, userID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	address := Address{
		UserID:     userID,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}

	if err := tx.Create(&address).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetUserAddresses(userID)
}

// UpdateAddress updates an existing address and returns the full list
func (s *AddressService) UpdateAddress(userID, addressID uint, req *UpdateAddressRequest) ([]Address, error) {
	address, err := s.GetAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.IsDefault != nil && *req.IsDefault {
		if err := s.unsetDefaultAddresses(tx, userID); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	updates := make(map[string]interface{})

	if req.Street != nil {
		updates["street"] = *req.Street
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}

	if err := tx.Model(address).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetUserAddresses(userID)
}

// DeleteAddress deletes an address and returns the remaining list
func (s *AddressService) DeleteAddress(userID, addressID uint) ([]Address, error) {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to delete address: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("address not found")
	}

	return s.GetUserAddresses(userID)
}

// GetDefaultAddress gets the default address for a user
func (s *AddressService) GetDefaultAddress(userID uint) (*Address, error) {
	var address Address
	result := s.db.Where("user_id = ? AND is_default = ?", userID, true).First(&address)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no default address found")
		}
		return nil, fmt.Errorf("failed to retrieve default address: %w", result.Error)
	}

	return &address, nil
}

// unsetDefaultAddresses removes the default flag from all of a user's addresses
func (s *AddressService) unsetDefaultAddresses(tx *gorm.DB, userID uint) error {
	return tx.Model(&Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
