package endpoint

import (
	"time"

	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type StatsResponse struct {
	Total             int64    `json:"total" example:"3"`
	AverageAge        *float64 `json:"average_age" example:"6"`
	AverageAgeDisplay string   `json:"average_age_display" example:"6.00"`
	Date              string   `json:"date" example:"2024-05-01"`
	CountForDate      int64    `json:"count_for_date" example:"1"`
}

// now is replaced in tests.
var now = time.Now

// GetStats godoc
// @Summary      Consultation statistics
// @Description  Total consultations, mean patient age and the count for one date (today by default)
// @Tags         Statistics
// @Produce      json
// @Param        date query string false "Date to count, YYYY-MM-DD (defaults to today)"
// @Success      200 {object} util.APIResponse{data=StatsResponse} "Statistics"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /stats [get]
func GetStats(c *gin.Context) {
	s, ok := getConsultationStoreOrRespond(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		date = now().Format(dateLayout)
	}

	ctx := c.Request.Context()
	total, avg, err := s.CountAndAverageAge(ctx)
	if err != nil {
		respondStoreError(c, err, "Impossible de calculer les statistiques")
		return
	}
	forDate, err := s.CountForDate(ctx, date)
	if err != nil {
		respondStoreError(c, err, "Impossible de calculer les statistiques")
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Statistiques",
		Data: StatsResponse{
			Total:             total,
			AverageAge:        avg,
			AverageAgeDisplay: util.FormatAverageAge(avg),
			Date:              date,
			CountForDate:      forDate,
		},
	})
}
