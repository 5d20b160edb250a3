package models

type Permission uint8

const (
	PermissionNone           Permission = 0
	PermissionAdmin          Permission = 1
	PermissionAddImages      Permission = 2 // can create albums and upload images
	PermissionModerateAlbums Permission = 3 // can view, update and delete any album
)

type Grant struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	GrantorID  uint64
	Grantor    User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	UserID     uint64     `gorm:"index:user_permission,unique"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Permission Permission `gorm:"index:user_permission,unique"`
}
