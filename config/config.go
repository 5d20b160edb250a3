package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	MYSQL_DSN    = "" // MySQL will be used if this is set
	SQLITE_FILE  = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS = "0.0.0.0:8080"
	TMP_DIR      = "/tmp" // Local staging area for S3 buckets
	DEBUG_MODE   = true

	// Initial disk bucket, created on first start when no bucket exists yet
	DEFAULT_BUCKET_DIR = ""

	// Gallery limits
	MAX_IMAGES_PER_USER = 50
	IMAGES_ON_PAGE      = 20
	ALBUMS_ON_PAGE      = 20
	THUMB_SIZE          = 1280

	// Activity feed verbs
	ALBUM_ADD_VERB       = "created album"
	ALBUM_ADD_IMAGE_VERB = "added images to album"
)

func init() {
	// Optional .env file, real env variables take precedence
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvInt("MAX_IMAGES_PER_USER", &MAX_IMAGES_PER_USER)
	readEnvInt("IMAGES_ON_PAGE", &IMAGES_ON_PAGE)
	readEnvInt("ALBUMS_ON_PAGE", &ALBUMS_ON_PAGE)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvString("ALBUM_ADD_VERB", &ALBUM_ADD_VERB)
	readEnvString("ALBUM_ADD_IMAGE_VERB", &ALBUM_ADD_IMAGE_VERB)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
