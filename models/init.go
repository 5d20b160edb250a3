package models

import "imagestore/db"

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Grant{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&Image{})
	db.Instance.AutoMigrate(&Comment{})
	db.Instance.AutoMigrate(&Tag{})
	db.Instance.AutoMigrate(&ImageTag{})
	db.Instance.AutoMigrate(&AlbumShare{})
}
