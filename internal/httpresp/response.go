package httpresp

import "github.com/gin-gonic/gin"

// The booking frontend expects every successful payload to carry
// "success": true alongside the data fields.

func OK(c *gin.Context, data gin.H) {
	out := gin.H{"success": true}
	for k, v := range data {
		out[k] = v
	}
	c.JSON(200, out)
}

func Created(c *gin.Context, data gin.H) {
	out := gin.H{"success": true}
	for k, v := range data {
		out[k] = v
	}
	c.JSON(201, out)
}
