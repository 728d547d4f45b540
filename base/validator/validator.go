package validator

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcarousel/domain"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// NewCustomValidator registers the project tags on v:
//   - address: a hex chain address
//   - chain: one of domain.SupportedChains
func NewCustomValidator(v *validator.Validate) echo.Validator {
	_ = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation("chain", func(fl validator.FieldLevel) bool {
		return domain.ChainName(fl.Field().String()).IsSupported()
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
