package course

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"free", TypeFree, false},
		{"rent", TypeRent, false},
		{"buy", TypeBuy, false},
		{"subscription", "", true},
		{"", "", true},
		{"Rent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownType)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTypeSemantics(t *testing.T) {
	tests := []struct {
		courseType Type
		priced     bool
		rental     bool
	}{
		{TypeFree, false, false},
		{TypeRent, true, true},
		{TypeBuy, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.courseType), func(t *testing.T) {
			assert.Equal(t, tt.priced, tt.courseType.Priced())
			assert.Equal(t, tt.rental, tt.courseType.Rental())
		})
	}
}

func TestNewCourseResponse_HidesPriceForFree(t *testing.T) {
	free := &Course{Code: "ros2-course", Title: "ROS2 Course", Type: TypeFree, Price: 0}
	rent := &Course{Code: "python-junior", Title: "Python Junior", Type: TypeRent, Price: 299.99}

	freeResp := NewCourseResponse(free)
	assert.Nil(t, freeResp.Price)

	rentResp := NewCourseResponse(rent)
	require.NotNil(t, rentResp.Price)
	assert.Equal(t, 299.99, *rentResp.Price)

	// Price must not leak into the JSON of a free course
	data, err := json.Marshal(freeResp)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "price")
}

func TestCourseRequest_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req CourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, req)
	})

	w := httptest.NewRecorder()
	reqBody := bytes.NewBuffer([]byte(`{}`))
	req, _ := http.NewRequest(http.MethodPost, "/", reqBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Code")
	assert.Contains(t, w.Body.String(), "Title")
	assert.Contains(t, w.Body.String(), "required")
}

func TestCourseRequest_NegativePriceRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req CourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, req)
	})

	w := httptest.NewRecorder()
	reqBody := bytes.NewBuffer([]byte(`{"code":"x","title":"X","type":"buy","price":-10}`))
	req, _ := http.NewRequest(http.MethodPost, "/", reqBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Price")
}
