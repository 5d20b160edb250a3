package main

import (
	"log"
	"strings"
	"time"

	"imagestore/auth"
	"imagestore/config"
	"imagestore/db"
	"imagestore/feed"
	"imagestore/handlers"
	"imagestore/models"
	"imagestore/processing"
	"imagestore/profile"
	"imagestore/storage"
	"imagestore/utils"
	"imagestore/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	profile.Init()
	feed.Init()
	storage.Init()
	go processing.StartProcessing()

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/image/fetch"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/login", handlers.UserLogin)
	router.GET("/user/status", handlers.UserGetStatus)
	authRouter.POST("/user/logout", handlers.UserLogout)
	// Album handlers
	router.GET("/album/list", handlers.AlbumList)
	authRouter.POST("/album/create", handlers.AlbumCreate, models.PermissionAddImages)
	authRouter.POST("/album/save", handlers.AlbumSave) // owner/moderator check in handler
	authRouter.POST("/album/delete", handlers.AlbumDelete)
	authRouter.GET("/album/share", handlers.AlbumShare)
	router.GET("/album/comments", handlers.AlbumComments)
	authRouter.POST("/album/comment", handlers.CommentCreate)
	// Image handlers
	router.GET("/image/list", handlers.ImageList)
	router.GET("/image/list-min", handlers.ImageListMin)
	router.GET("/image/list-ex", handlers.ImageListEx)
	router.GET("/image/view", handlers.ImageView)
	router.GET("/image/fetch", handlers.ImageFetch) // Auth checks are done inside the handler
	authRouter.POST("/image/create", handlers.ImageCreate, models.PermissionAddImages)
	router.POST("/image/edit", handlers.ImageEdit) // session handled inside, 400/404 semantics
	authRouter.POST("/image/delete", handlers.ImageDelete)
	authRouter.POST("/image/reorder", handlers.ImageReorder)
	// Activity feed
	router.GET("/feed/list", handlers.FeedList)
	authRouter.GET("/feed/live", handlers.FeedLive)

	/*
	 *	Web interface
	 */
	router.GET("/w/album/:token/", web.AlbumView)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
