package routes

import (
	"cityfix-be/models"

	"github.com/gin-gonic/gin"
)

// UserRoutes covers citizen accounts and staff management. Staff live under
// both the historical /sttafs path and /staffs.
func UserRoutes(r *gin.Engine, d Deps) {
	users := r.Group("/users")
	{
		users.POST("", d.Users.RegisterUser)
		users.GET("", d.verify(), d.require(models.RoleAdmin), d.Users.GetUsers)
		users.GET("/:email", d.Users.GetUser)
		users.GET("/:email/role", d.Users.GetUserRole)
		users.PATCH("/:id", d.verify(), d.require(models.RoleAdmin), d.Users.UpdateUserStatus)
	}

	for _, path := range []string{"/sttafs", "/staffs"} {
		staff := r.Group(path)
		staff.POST("", d.verify(), d.require(models.RoleAdmin), d.Staff.CreateStaff)
		staff.GET("", d.Staff.GetStaff)
		staff.GET("/:id", d.Staff.GetStaffMember)
		staff.PATCH("/:id", d.verify(), d.require(models.RoleAdmin), d.Staff.UpdateStaff)
		staff.DELETE("/:id", d.verify(), d.require(models.RoleAdmin), d.Staff.DeleteStaff)
	}
}
