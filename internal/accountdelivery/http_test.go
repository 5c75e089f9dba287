package accountdelivery

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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-nick/demo-bank/internal/domain"
	"github.com/go-nick/demo-bank/internal/middleware"
	"github.com/go-nick/demo-bank/pkg/errorspkg"
	"github.com/go-nick/demo-bank/pkg/randompkg"
	"github.com/go-nick/demo-bank/pkg/tokenpkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testAccount(t *testing.T) domain.Account {
	t.Helper()

	return domain.Account{
		Owner:    "Jessica Davis",
		Username: "jd",
		PIN:      2222,
		Movements: []decimal.Decimal{
			decimal.NewFromInt(5000),
			decimal.NewFromInt(-150),
		},
		MovementDates: []time.Time{
			time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		},
		InterestRate: decimal.NewFromFloat(1.5),
		Currency:     "USD",
		Locale:       "en-US",
	}
}

func TestSummary(t *testing.T) {
	account := testAccount(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name           string
		query          string
		setupAuth      func(t *testing.T, request *http.Request)
		buildStubs     func(service *MockService)
		wantStatusCode int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:  "OK",
			query: "",
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.Username)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var got struct {
					Data summaryData `json:"data"`
				}

				require.NoError(t, json.Unmarshal(body, &got))
				require.Equal(t, account.Owner, got.Data.Owner)
				require.Equal(t, account.Username, got.Data.Username)
				require.NotEmpty(t, got.Data.Balance)
				require.NotEmpty(t, got.Data.TotalIncome)
				require.NotEmpty(t, got.Data.TotalExpense)
				require.NotEmpty(t, got.Data.InterestEarned)

				require.Len(t, got.Data.Movements, 2)
				require.Equal(t, "deposit", got.Data.Movements[0].Type)
				require.Equal(t, "Yesterday", got.Data.Movements[0].Date)
				require.Equal(t, "withdrawal", got.Data.Movements[1].Type)
				require.Equal(t, "Today", got.Data.Movements[1].Date)
			},
		},
		{
			name:  "SortDescending",
			query: "?sort=desc",
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.Username)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var got struct {
					Data summaryData `json:"data"`
				}

				require.NoError(t, json.Unmarshal(body, &got))
				require.Len(t, got.Data.Movements, 2)
				require.Equal(t, "deposit", got.Data.Movements[0].Type)
				require.Equal(t, "withdrawal", got.Data.Movements[1].Type)
			},
		},
		{
			name:  "SortAscending",
			query: "?sort=asc",
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.Username)).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var got struct {
					Data summaryData `json:"data"`
				}

				require.NoError(t, json.Unmarshal(body, &got))
				require.Len(t, got.Data.Movements, 2)
				require.Equal(t, "withdrawal", got.Data.Movements[0].Type)
				require.Equal(t, "deposit", got.Data.Movements[1].Type)
			},
		},
		{
			name:  "InvalidSort",
			query: "?sort=sideways",
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:      "NoAuthorization",
			query:     "",
			setupAuth: func(t *testing.T, request *http.Request) {},
			buildStubs: func(service *MockService) {
				service.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:  "AccountNotFound",
			query: "",
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.Username)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:  "InternalError",
			query: "",
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.Username)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
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
			handler.now = func() time.Time { return now }

			router := gin.New()
			router.GET("/accounts/summary", middleware.AuthMiddleware(tokenMaker), handler.Summary)

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/accounts/summary"+tc.query, nil)
			tc.setupAuth(t, request)

			router.ServeHTTP(recorder, request)
			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, recorder.Body.Bytes())
			}
		})
	}
}

func TestClose(t *testing.T) {
	account := testAccount(t)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	testCases := []struct {
		name           string
		requestBody    gin.H
		setupAuth      func(t *testing.T, request *http.Request)
		buildStubs     func(service *MockService)
		wantStatusCode int
	}{
		{
			name:        "OK",
			requestBody: gin.H{"username": "jd", "pin": 2222},
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Close(gomock.Any(), gomock.Eq("jd"), gomock.Eq("jd"), gomock.Eq(int32(2222))).
					Times(1).
					Return(nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "WrongConfirmation",
			requestBody: gin.H{"username": "jd", "pin": 9999},
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Close(gomock.Any(), gomock.Eq("jd"), gomock.Eq("jd"), gomock.Eq(int32(9999))).
					Times(1).
					Return(domain.ErrCloseConfirmation)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:        "AccountNotFound",
			requestBody: gin.H{"username": "jd", "pin": 2222},
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Close(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:        "MissingPin",
			requestBody: gin.H{"username": "jd"},
			setupAuth: func(t *testing.T, request *http.Request) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Close(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "NoAuthorization",
			requestBody: gin.H{"username": "jd", "pin": 2222},
			setupAuth:   func(t *testing.T, request *http.Request) {},
			buildStubs: func(service *MockService) {
				service.EXPECT().Close(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
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
			router.DELETE("/accounts", middleware.AuthMiddleware(tokenMaker), handler.Close)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodDelete, "/accounts", bytes.NewReader(body))
			tc.setupAuth(t, request)

			router.ServeHTTP(recorder, request)
			require.Equal(t, tc.wantStatusCode, recorder.Code)
		})
	}
}
