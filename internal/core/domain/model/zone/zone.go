package zone

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var ErrZoneIsNotConstructed = errors.New("DeliveryZone must be created via NewDeliveryZone or RestoreDeliveryZone")

// DeliveryZone prices delivery for every address that starts with its key.
type DeliveryZone struct {
	id        kernel.UUID
	matchKey  string
	name      string
	fee       kernel.Money
	active    bool
	createdAt time.Time

	isConstructed bool
}

func NewDeliveryZone(id kernel.UUID, matchKey, name string, fee kernel.Money, createdAt time.Time) (*DeliveryZone, error) {
	return RestoreDeliveryZone(id, matchKey, name, fee, true, createdAt)
}

func RestoreDeliveryZone(
	id kernel.UUID,
	matchKey, name string,
	fee kernel.Money,
	active bool,
	createdAt time.Time,
) (*DeliveryZone, error) {
	z := &DeliveryZone{
		fee:           fee,
		active:        active,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		z.setID(id),
		z.setMatchKey(matchKey),
	); err != nil {
		return nil, err
	}

	z.name = strings.TrimSpace(name)
	if z.name == "" {
		z.name = z.matchKey
	}

	return z, nil
}

func (z *DeliveryZone) Validate() error {
	if z == nil || !z.isConstructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

func (z *DeliveryZone) ID() kernel.UUID { return z.id }

// MatchKey is the normalized address prefix.
func (z *DeliveryZone) MatchKey() string { return z.matchKey }

func (z *DeliveryZone) Name() string { return z.name }

func (z *DeliveryZone) Fee() kernel.Money { return z.fee }

func (z *DeliveryZone) IsActive() bool { return z.active }

func (z *DeliveryZone) CreatedAt() time.Time { return z.createdAt }

func (z *DeliveryZone) Deactivate() { z.active = false }

// Matches reports whether the normalized address equals the key or continues
// it past a word boundary.
func (z *DeliveryZone) Matches(normalizedAddress string) bool {
	if !strings.HasPrefix(normalizedAddress, z.matchKey) {
		return false
	}
	rest := normalizedAddress[len(z.matchKey):]
	if rest == "" {
		return true
	}
	next := []rune(rest)[0]
	return !unicode.IsLetter(next) && !unicode.IsDigit(next)
}

func (z *DeliveryZone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *DeliveryZone) setMatchKey(key string) error {
	key = NormalizeAddress(key)
	if key == "" {
		return errs.NewValueIsRequiredError("match key")
	}
	z.matchKey = key
	return nil
}

// NormalizeAddress trims, collapses inner whitespace and case-folds.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}
