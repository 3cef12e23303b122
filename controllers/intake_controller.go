package controllers

import (
	"net/http"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type IntakeController struct {
	Worker *services.TargetWorker
}

func NewIntakeController(worker *services.TargetWorker) *IntakeController {
	return &IntakeController{Worker: worker}
}

// SubmitIntake validates and stores a profile snapshot, then kicks off the
// background daily-targets computation. The response returns immediately;
// targets land on the intake row when the job finishes.
func (ic *IntakeController) SubmitIntake(c *gin.Context) {
	var input services.IntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Username == "" {
		input.Username = c.GetString("username")
	}

	svc := services.NewIntakeService(config.DB)
	rec, err := svc.Create(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID, queued := ic.Worker.Enqueue(rec.Username)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Profile saved. Daily targets are being computed in the background.",
		"intake":  rec,
		"job_id":  jobID,
		"queued":  queued,
	})
}

func GetProfile(c *gin.Context) {
	username := c.Param("username")

	svc := services.NewIntakeService(config.DB)
	rec, err := svc.Latest(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
