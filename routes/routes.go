package routes

import (
	"applicant-tracking-api/controllers"
	"applicant-tracking-api/middleware"
	"applicant-tracking-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)

			// Public application form
			public.POST("/apply", controllers.ApplyCandidate)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Applicant Tracking API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)
			protected.GET("/permissions", controllers.GetPermissions)

			// Candidates (HR roles)
			hrRoles := middleware.RequireRole(models.RoleHRAdmin, models.RoleHRStaff, models.RoleHRManager)
			candidates := protected.Group("/candidates")
			{
				candidates.GET("", hrRoles, controllers.GetCandidates)
				candidates.GET("/:id", hrRoles, controllers.GetCandidate)
				candidates.PUT("/:id", hrRoles, controllers.UpdateCandidate)
				candidates.GET("/:id/history", hrRoles, controllers.GetCandidateHistory)

				// Workflow actions
				candidates.POST("/:id/shortlist", hrRoles, controllers.ShortlistCandidate)
				candidates.POST("/:id/reassign", hrRoles, controllers.ReassignInterviewer)
				candidates.POST("/:id/reject", hrRoles, controllers.RejectCandidate)
				candidates.POST("/:id/hold", hrRoles, controllers.HoldCandidate)
				candidates.POST("/:id/resume", hrRoles, controllers.ResumeCandidate)
				candidates.POST("/:id/hire", hrRoles, controllers.HireCandidate)
				candidates.POST("/:id/decline-offer", hrRoles, controllers.DeclineOffer)

				// Interview scheduling and offer submission
				candidates.POST("/:id/interviews", hrRoles, controllers.ScheduleInterview)
				candidates.POST("/:id/offer",
					middleware.RequireRole(models.RoleHRAdmin, models.RoleHRStaff),
					controllers.SendOffer)

				// Feedback read access
				candidates.GET("/:id/feedback",
					middleware.RequireRole(models.RoleHRAdmin, models.RoleHRStaff, models.RoleHRManager, models.RoleInterviewer),
					controllers.GetCandidateFeedback)

				// Resume documents
				candidates.POST("/:id/resume-file", hrRoles, controllers.UploadResume)
			}

			// Interviews (interviewer + HR)
			interviews := protected.Group("/interviews")
			{
				interviews.GET("",
					middleware.RequireRole(models.RoleHRAdmin, models.RoleHRStaff, models.RoleHRManager, models.RoleInterviewer),
					controllers.GetInterviews)
				interviews.POST("/:id/feedback",
					middleware.RequireRole(models.RoleInterviewer, models.RoleHRAdmin),
					controllers.SubmitFeedback)
			}

			// Feedback back-fill during offer preparation
			protected.PUT("/feedback/:id/backfill",
				middleware.RequireRole(models.RoleHRAdmin, models.RoleHRStaff),
				controllers.BackfillFeedback)

			// Job proposals (two-stage approval)
			proposals := protected.Group("/proposals")
			{
				proposals.GET("", hrRoles, controllers.GetProposals)
				proposals.POST("/:id/approve",
					middleware.RequireRole(models.RoleHRManager),
					controllers.ApproveOfferHRManager)
				proposals.POST("/:id/reject",
					middleware.RequireRole(models.RoleHRManager),
					controllers.RejectOfferHRManager)
				proposals.POST("/:id/acknowledge",
					middleware.RequireRole(models.RoleInterviewer),
					controllers.AcknowledgeOfferInterviewer)
				proposals.POST("/:id/decline",
					middleware.RequireRole(models.RoleInterviewer),
					controllers.RejectOfferInterviewer)
				proposals.POST("/:id/resubmit",
					middleware.RequireRole(models.RoleHRAdmin, models.RoleHRStaff),
					controllers.ResubmitOffer)
			}

			// In-app notifications (any authenticated user)
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.GET("/counter", controllers.GetNotificationCounter)
				notifications.POST("", controllers.CreateNotification)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Outbound email audit log (privileged)
			protected.GET("/email-log",
				middleware.RequireRole(models.RoleHRAdmin, models.RoleHRManager),
				controllers.GetEmailLog)

			// Server-side relay function; the webhook secret never leaves it
			protected.POST("/functions/send-email-notification", controllers.SendEmailNotification)

			// Documents
			protected.GET("/documents/:document_id", hrRoles, controllers.DownloadResume)

			// Dashboard
			protected.GET("/dashboard/stats",
				middleware.RequireRole(models.RoleHRAdmin, models.RoleHRStaff, models.RoleHRManager, models.RoleInterviewer),
				controllers.GetDashboardStats)

			// Admin user management
			users := protected.Group("/users")
			users.Use(middleware.RequireRole(models.RoleHRAdmin))
			{
				users.GET("", controllers.GetUsers)
				users.POST("/:id/approve", controllers.ApproveUser)
				users.POST("/:id/deactivate", controllers.DeactivateUser)
			}
		}
	}
}
