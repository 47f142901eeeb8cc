package daemon

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kusaanko/BatFi/pkg/power"
)

func (d *Daemon) getPowerDistribution(c *gin.Context) {
	info, err := d.smc.GetPowerDistribution()
	if err != nil {
		logrus.Errorf("getPowerDistribution failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, info)
}

func (d *Daemon) getSnapshot(c *gin.Context) {
	snap := d.ctl.LatestSnapshot()
	if snap == nil {
		c.IndentedJSON(http.StatusNotFound, "no snapshot recorded yet")
		return
	}
	c.IndentedJSON(http.StatusOK, snap)
}

func (d *Daemon) getChargingMode(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, d.ctl.Mode())
}

func (d *Daemon) setChargingMode(c *gin.Context) {
	var m power.AppChargingMode
	if err := c.BindJSON(&m); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if err := d.ctl.SetOverride(m); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	// Re-evaluate promptly instead of waiting for the next OS notification.
	d.bridge.Notify()

	c.IndentedJSON(http.StatusOK, fmt.Sprintf("charging mode override set to %q", m))
}

func (d *Daemon) getLimit(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, d.settings.ChargeLimit())
}

func (d *Daemon) setLimit(c *gin.Context) {
	var l int
	if err := c.BindJSON(&l); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if l < 10 || l > 100 {
		err := fmt.Errorf("limit must be between 10 and 100, got %d", l)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if err := d.settings.SetChargeLimit(l); err != nil {
		logrus.Errorf("SetChargeLimit failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	d.bridge.Notify()

	logrus.Infof("set charging limit to %d", l)
	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("set charging limit to %d", l))
}

func (d *Daemon) getChargeManagement(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, d.settings.ChargeManagementEnabled())
}

func (d *Daemon) setChargeManagement(c *gin.Context) {
	var enabled bool
	if err := c.BindJSON(&enabled); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if err := d.settings.SetChargeManagementEnabled(enabled); err != nil {
		logrus.Errorf("SetChargeManagementEnabled failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	d.bridge.Notify()

	logrus.Infof("charge management enabled: %t", enabled)
	c.IndentedJSON(http.StatusOK, enabled)
}

func (d *Daemon) getHistory(c *gin.Context) {
	from, err := epochQuery(c, "from", time.Now().Add(-24*time.Hour))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}
	to, err := epochQuery(c, "to", time.Now())
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	points, err := d.store.PointsInRange(from, to)
	if err != nil {
		logrus.Errorf("getHistory failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, points)
}

func epochQuery(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %v", name, err)
	}
	return time.Unix(epoch, 0), nil
}
