package routes

import "github.com/gin-gonic/gin"

func ReferenceRoutes(r *gin.Engine, d Deps) {
	r.GET("/districtbyRegion", d.References.Districts)
	r.GET("/category", d.References.Categories)
	r.GET("/features", d.References.Features)
	r.GET("/howItWorksSteps", d.References.Steps)
}
