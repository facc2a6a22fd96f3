package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every API route without auth or shared middleware.
// Production goes through NewServer, which layers JWT, health routes, and
// the standard middleware on top; this flat variant serves tests.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/ready", handler.ReadyCheck)

	v1 := router.Group("/api/v1")
	{
		// Scoring endpoints
		score := v1.Group("/score")
		{
			score.POST("", handler.Score)            // POST /api/v1/score
			score.POST("/batch", handler.ScoreBatch) // POST /api/v1/score/batch

			components := score.Group("/components")
			{
				components.POST("/distinctiveness", handler.ScoreDistinctiveness)
				components.POST("/describability", handler.ScoreDescribability)
				components.POST("/heuristics", handler.ScoreHeuristics)
				components.POST("/cultural", handler.ScoreCultural)
			}
		}

		// Corpus inspection
		v1.GET("/corpus/stats", handler.GetCorpusStats) // GET /api/v1/corpus/stats

		// Decision audit endpoints
		decisions := v1.Group("/decisions")
		{
			decisions.GET("/recent", handler.GetRecentDecisions) // GET /api/v1/decisions/recent
			decisions.GET("/stats", handler.GetDecisionStats)    // GET /api/v1/decisions/stats
		}

		// Asynchronous intake
		v1.POST("/submissions", handler.CreateSubmission) // POST /api/v1/submissions
	}
}
