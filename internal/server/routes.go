package server

import (
	"net/http"

	"github.com/USA-RedDragon/gory/internal/server/controllers"
	"github.com/USA-RedDragon/gory/internal/web"
	"github.com/gin-gonic/gin"
)

func applyRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/ready", controllers.GETReady)

	r.StaticFS("/static", web.StaticFS())
	r.GET("/media/*filepath", controllers.GETMedia)

	r.GET("/", controllers.GETTrips)
	r.POST("/trips", controllers.POSTTrip)

	trip := r.Group("/trip/:id")
	trip.GET("", controllers.GETTrip)
	trip.POST("/edit", controllers.POSTTripEdit)
	trip.POST("/delete", controllers.POSTTripDelete)
	trip.POST("/locations", controllers.POSTLocation)
	trip.POST("/locations/:locationID/delete", controllers.POSTLocationDelete)
	trip.POST("/photos", controllers.POSTPhoto)
	trip.POST("/photos/:photoID/delete", controllers.POSTPhotoDelete)

	r.NoRoute(controllers.NotFound)
}
