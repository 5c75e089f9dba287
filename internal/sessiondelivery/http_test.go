package sessiondelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-nick/demo-bank/internal/domain"
	"github.com/go-nick/demo-bank/internal/sessionservice"
	"github.com/go-nick/demo-bank/pkg/errorspkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestLogin(t *testing.T) {
	account := domain.Account{
		Owner:    "Jonas Schmedtmann",
		Username: "js",
		PIN:      1111,
		Currency: "EUR",
		Locale:   "pt-PT",
	}

	loginResult := sessionservice.LoginResult{
		Account:              account,
		AccessToken:          "token",
		AccessTokenExpiresAt: time.Now().Add(time.Minute),
	}

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:        "OK",
			requestBody: gin.H{"username": "js", "pin": 1111},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Eq("js"), gomock.Eq(int32(1111))).
					Times(1).
					Return(loginResult, nil)
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var got struct {
					AccessToken string `json:"access_token"`
					Data        struct {
						Welcome  string `json:"welcome"`
						Username string `json:"username"`
						Now      string `json:"now"`
					} `json:"data"`
				}

				require.NoError(t, json.Unmarshal(body, &got))
				require.Equal(t, "token", got.AccessToken)
				require.Equal(t, "Welcome back, Jonas", got.Data.Welcome)
				require.Equal(t, "js", got.Data.Username)
				require.NotEmpty(t, got.Data.Now)
			},
		},
		{
			name:        "WrongPin",
			requestBody: gin.H{"username": "js", "pin": 9999},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Eq("js"), gomock.Eq(int32(9999))).
					Times(1).
					Return(sessionservice.LoginResult{}, domain.ErrWrongPin)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:        "MissingPin",
			requestBody: gin.H{"username": "js"},
			buildStubs: func(service *MockService) {
				service.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "PinOutOfRange",
			requestBody: gin.H{"username": "js", "pin": 12},
			buildStubs: func(service *MockService) {
				service.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "InternalError",
			requestBody: gin.H{"username": "js", "pin": 1111},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(sessionservice.LoginResult{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			handler := NewHandler(service)

			router := gin.New()
			router.POST("/sessions", handler.Login)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))

			router.ServeHTTP(recorder, request)
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, recorder.Body.Bytes())
			}
		})
	}
}
