package component

import "image/color"

type WeaponType string

const (
	WeaponBomb    WeaponType = "bomb"
	WeaponTNT     WeaponType = "tnt"
	WeaponGrenade WeaponType = "grenade"
)

// Weapon tags a detonatable entity. Detonating is a one-shot latch set
// synchronously before any force application or removal so that duplicate
// event delivery for one gesture detonates at most once.
type Weapon struct {
	Type       WeaponType
	Fill       color.NRGBA
	Outline    color.NRGBA
	Detonating bool
}

var WeaponComponent = NewComponent[Weapon]()
