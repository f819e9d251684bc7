package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/dashboard_backend/config"
	"github.com/mmdatafocus/dashboard_backend/models/reports"
	"go.opentelemetry.io/otel/attribute"
)

// chartDataHandler serves the dense daily series behind the comparison chart.
// Required params: productIds, from, to, metrics. The missing-params check
// runs first, then range order, then the span cap.
func chartDataHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		productIdsParam := c.Query("productIds")
		fromParam := c.Query("from")
		toParam := c.Query("to")
		metricsParam := c.Query("metrics")

		if productIdsParam == "" || fromParam == "" || toParam == "" || metricsParam == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing params"})
			return
		}

		from, err := time.ParseInLocation("2006-01-02", fromParam, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
		to, err := time.ParseInLocation("2006-01-02", toParam, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date, expected YYYY-MM-DD"})
			return
		}

		// Unparseable ids match nothing; they are dropped the same way ids
		// absent from the catalog are.
		productIds := make([]int, 0)
		for _, raw := range strings.Split(productIdsParam, ",") {
			if id, aerr := strconv.Atoi(strings.TrimSpace(raw)); aerr == nil {
				productIds = append(productIds, id)
			}
		}

		metrics := reports.ParseMetrics(strings.Split(metricsParam, ","))

		ctx, span := startSpan(c.Request.Context(), "build-daily-series")
		span.SetAttributes(attribute.String("from", fromParam), attribute.String("to", toParam))
		defer span.End()

		series, err := reports.BuildDailySeries(ctx, config.GetDB(), productIds, from, to, metrics)
		if err != nil {
			switch {
			case errors.Is(err, reports.ErrInvalidRange),
				errors.Is(err, reports.ErrRangeTooLarge),
				errors.Is(err, reports.ErrNoMetrics):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				config.LogError(config.GetLogger(), "dataHandlers.go", "chartDataHandler", "BuildDailySeries", nil, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": series})
	}
}
