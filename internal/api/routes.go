package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.Static("/assets", h.loader.AssetsDir)

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/categories", categoriesHandler)
		api.GET("/presets", presetsHandler)

		api.POST("/sessions", h.openSession)
		api.DELETE("/sessions/:id", h.closeSession)
		s := api.Group("/sessions/:id", h.loadSession)
		{
			s.GET("", h.getSession)

			s.PUT("/source/:op", h.putSource)
			s.DELETE("/source/:op", h.clearSource)
			s.POST("/resize", h.resizeHandler)
			s.POST("/thumbnails", h.thumbnailsHandler)
			s.POST("/wallpaper", h.wallpaperHandler)
			s.GET("/results/:op", h.resultsHandler)
			s.GET("/results/:op/download", h.downloadResult)

			s.GET("/media", h.listMedia)
			s.POST("/media", h.uploadMedia)
			s.DELETE("/media/:mid", h.deleteMedia)
			s.GET("/media/:mid/download", h.downloadMedia)
			s.GET("/media/:mid/qr", h.mediaQR)

			s.POST("/filters/toggle", h.toggleFilter)
			s.POST("/filters/all", h.toggleAllFilters)

			s.GET("/manifest", h.manifest)
		}
	}
}
