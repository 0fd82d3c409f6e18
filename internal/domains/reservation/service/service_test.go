package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ComfortN/restaurent-cms/config"
	notifierMocks "github.com/ComfortN/restaurent-cms/infras/notifier/mocks"
	"github.com/ComfortN/restaurent-cms/infras/otel/mocks"
	paymentMocks "github.com/ComfortN/restaurent-cms/infras/payment/mocks"
	reservationMocks "github.com/ComfortN/restaurent-cms/internal/domains/reservation/mocks"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/model/dto"
	"github.com/ComfortN/restaurent-cms/internal/domains/reservation/service"
	restaurantMocks "github.com/ComfortN/restaurent-cms/internal/domains/restaurant/mocks"
	restaurantModel "github.com/ComfortN/restaurent-cms/internal/domains/restaurant/model"
	userMocks "github.com/ComfortN/restaurent-cms/internal/domains/user/mocks"
	cacheMocks "github.com/ComfortN/restaurent-cms/shared/cache/mocks"
	"github.com/ComfortN/restaurent-cms/shared/constant"
	"github.com/ComfortN/restaurent-cms/shared/failure"
	gModel "github.com/ComfortN/restaurent-cms/shared/model"
	"github.com/ComfortN/restaurent-cms/shared/timezone"
)

const (
	testRestaurantID = "9f0c8f3a-0000-0000-0000-000000000001"
	// Monday, well in the future so the past-date check never trips.
	testDate = "2030-01-07"
)

type serviceMocks struct {
	repo           *reservationMocks.MockReservation
	restaurantRepo *restaurantMocks.MockRestaurant
	userRepo       *userMocks.MockUser
	cache          *cacheMocks.MockRedisCache
	notifier       *notifierMocks.MockNotifier
	payment        *paymentMocks.MockGateway
}

func newTestService(ctrl *gomock.Controller) (service.Reservation, serviceMocks) {
	m := serviceMocks{
		repo:           reservationMocks.NewMockReservation(ctrl),
		restaurantRepo: restaurantMocks.NewMockRestaurant(ctrl),
		userRepo:       userMocks.NewMockUser(ctrl),
		cache:          cacheMocks.NewMockRedisCache(ctrl),
		notifier:       notifierMocks.NewMockNotifier(ctrl),
		payment:        paymentMocks.NewMockGateway(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Reservation.DefaultSlotCapacity = 20
	cfg.Reservation.StoreTimeoutSeconds = 5
	cfg.Reservation.FeeCents = 1000

	svc := service.New(m.repo, m.restaurantRepo, m.userRepo, cfg, m.cache, mocks.NewOtel(), m.notifier, m.payment)

	return svc, m
}

func testRestaurant() restaurantModel.Restaurant {
	return restaurantModel.Restaurant{
		ID:      testRestaurantID,
		Name:    "The Copper Pot",
		AdminID: "admin-id",
		TimeSlots: restaurantModel.SlotList{
			{Time: "10:00 AM", Capacity: 20},
			{Time: "6:00 PM", Capacity: 20},
		},
		OperatingHours: restaurantModel.WeekSchedule{
			"monday": {Open: "10:00", Close: "21:00"},
		},
	}
}

func validCreateRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		RestaurantID:        testRestaurantID,
		Date:                testDate,
		Time:                "6:00 PM",
		Guests:              4,
		CustomerName:        "Jordan Mokoena",
		CustomerEmail:       "jordan@example.com",
		CustomerPhoneNumber: "+27115550101",
	}
}

func allowAsyncSideEffects(m serviceMocks) {
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.notifier.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	tests := []struct {
		name       string
		req        dto.CreateReservationRequest
		caller     gModel.Caller
		setupMock  func()
		wantErr    bool
		wantKind   string
		wantStatus string
	}{
		{
			name: "missing fields reported together",
			req: dto.CreateReservationRequest{
				RestaurantID: testRestaurantID,
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  model.KindValidation,
		},
		{
			name: "malformed date",
			req: func() dto.CreateReservationRequest {
				req := validCreateRequest()
				req.Date = "07/01/2030"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "past date",
			req: func() dto.CreateReservationRequest {
				req := validCreateRequest()
				req.Date = "2020-01-06"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantKind:  model.KindPastDate,
		},
		{
			name: "restaurant not found",
			req:  validCreateRequest(),
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(restaurantModel.Restaurant{}, nil)
			},
			wantErr: true,
		},
		{
			name: "slot not in catalog",
			req: func() dto.CreateReservationRequest {
				req := validCreateRequest()
				req.Time = "3:00 PM"

				return req
			}(),
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRestaurant(), nil)
			},
			wantErr:  true,
			wantKind: model.KindInvalidSlot,
		},
		{
			name: "slot outside operating hours",
			req: func() dto.CreateReservationRequest {
				req := validCreateRequest()
				req.Time = "9:00 PM"

				return req
			}(),
			setupMock: func() {
				restaurant := testRestaurant()
				restaurant.TimeSlots = append(restaurant.TimeSlots, restaurantModel.Slot{Time: "9:00 PM", Capacity: 20})

				m.restaurantRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(restaurant, nil)
			},
			wantErr:  true,
			wantKind: model.KindOutsideOperatingHours,
		},
		{
			name: "capacity exceeded",
			req:  validCreateRequest(),
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRestaurant(), nil)

				m.repo.EXPECT().
					SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
					Return(18, nil)
			},
			wantErr:  true,
			wantKind: model.KindCapacityExceeded,
		},
		{
			name: "negative guest count",
			req: func() dto.CreateReservationRequest {
				req := validCreateRequest()
				req.Guests = -1

				return req
			}(),
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRestaurant(), nil)

				m.repo.EXPECT().
					SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
					Return(0, nil)
			},
			wantErr:  true,
			wantKind: model.KindGuestCount,
		},
		{
			name: "store timeout is transient",
			req:  validCreateRequest(),
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRestaurant(), nil)

				m.repo.EXPECT().
					SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
					Return(0, context.DeadlineExceeded)
			},
			wantErr:  true,
			wantKind: model.KindTransientStore,
		},
		{
			name:   "customer booking starts pending",
			req:    validCreateRequest(),
			caller: gModel.Caller{ID: "customer-id", Role: constant.RoleUser},
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRestaurant(), nil)

				m.repo.EXPECT().
					SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
					Return(16, nil)

				m.repo.EXPECT().
					InsertWithCapacity(gomock.Any(), gomock.Any(), 20).
					Return(nil)

				allowAsyncSideEffects(m)
			},
			wantStatus: model.StatusPending,
		},
		{
			name:   "staff booking is confirmed directly",
			req:    validCreateRequest(),
			caller: gModel.Caller{ID: "admin-id", Role: constant.RoleRestaurantAdmin},
			setupMock: func() {
				m.restaurantRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRestaurant(), nil)

				m.repo.EXPECT().
					SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
					Return(0, nil)

				m.repo.EXPECT().
					InsertWithCapacity(gomock.Any(), gomock.Any(), 20).
					Return(nil)

				allowAsyncSideEffects(m)
			},
			wantStatus: model.StatusConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.caller, tt.req)

			if tt.wantErr || tt.wantKind != "" {
				assert.Error(t, err)
				if tt.wantKind != "" {
					assert.True(t, failure.IsKind(err, tt.wantKind), failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.Status)
				assert.Equal(t, "6:00 PM", res.Time)
			}
		})
	}
}

// Same-day bookings are admissible; only dates strictly before today
// are rejected as past.
func TestReservationService_CreateForToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	m.restaurantRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testRestaurant(), nil)

	m.repo.EXPECT().
		SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
		Return(0, nil)

	m.repo.EXPECT().
		InsertWithCapacity(gomock.Any(), gomock.Any(), 20).
		Return(nil)

	allowAsyncSideEffects(m)

	req := validCreateRequest()
	req.Date = timezone.Today().Format(constant.CalendarDateFormat)

	res, err := svc.Create(context.Background(), gModel.Caller{ID: "customer-id", Role: constant.RoleUser}, req)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestReservationService_CreateCapacityDetails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	restaurant := testRestaurant()
	restaurant.TimeSlots = restaurantModel.SlotList{{Time: "6:00 PM", Capacity: 10}}

	m.restaurantRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(restaurant, nil)

	m.repo.EXPECT().
		SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
		Return(10, nil)

	req := validCreateRequest()
	req.Guests = 1

	_, err := svc.Create(context.Background(), gModel.Caller{}, req)

	assert.Error(t, err)
	assert.True(t, failure.IsKind(err, model.KindCapacityExceeded))

	details := failure.GetDetails(err)
	assert.Equal(t, 0, details["available_seats"])
	assert.Equal(t, 1, details["requested_seats"])
}

func TestReservationService_CreateExactFit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	m.restaurantRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testRestaurant(), nil)

	// 16 seats booked, 4 requested, capacity 20: the request exactly
	// fills the slot.
	m.repo.EXPECT().
		SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
		Return(16, nil)

	m.repo.EXPECT().
		InsertWithCapacity(gomock.Any(), gomock.Any(), 20).
		Return(nil)

	allowAsyncSideEffects(m)

	res, err := svc.Create(context.Background(), gModel.Caller{}, validCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, 4, res.Guests)
}

func TestReservationService_CreateCanonicalizesSlotLabel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	m.restaurantRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testRestaurant(), nil)

	// The client spelled the slot in 24-hour form; persistence and
	// capacity sums must use the catalog's own label.
	m.repo.EXPECT().
		SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
		Return(0, nil)

	m.repo.EXPECT().
		InsertWithCapacity(gomock.Any(), gomock.Any(), 20).
		DoAndReturn(func(_ context.Context, res model.Reservation, _ int) error {
			assert.Equal(t, "6:00 PM", res.Time)

			return nil
		})

	allowAsyncSideEffects(m)

	req := validCreateRequest()
	req.Time = "18:00"

	res, err := svc.Create(context.Background(), gModel.Caller{}, req)

	assert.NoError(t, err)
	assert.Equal(t, "6:00 PM", res.Time)
}

// Concurrent requests against one slot must never admit more guests
// than the slot holds, even when every request reads the same booked
// sum before any of them writes.
func TestReservationService_CreateConcurrentAdmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	const (
		capacity = 20
		attempts = 30
	)

	restaurant := testRestaurant()
	restaurant.TimeSlots = restaurantModel.SlotList{{Time: "6:00 PM", Capacity: capacity}}

	m.restaurantRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(restaurant, nil).
		AnyTimes()

	// Admission serializes per slot key, so the fake store needs no
	// locking of its own.
	admitted := 0

	m.repo.EXPECT().
		SumGuests(gomock.Any(), testRestaurantID, gomock.Any(), gomock.Any(), "6:00 PM").
		DoAndReturn(func(context.Context, string, any, any, string) (int, error) {
			return admitted, nil
		}).
		AnyTimes()

	m.repo.EXPECT().
		InsertWithCapacity(gomock.Any(), gomock.Any(), capacity).
		DoAndReturn(func(_ context.Context, res model.Reservation, limit int) error {
			if admitted+res.Guests > limit {
				return model.ErrCapacityExceeded(limit-admitted, res.Guests)
			}

			admitted += res.Guests

			return nil
		}).
		AnyTimes()

	allowAsyncSideEffects(m)

	var (
		wg        sync.WaitGroup
		successMu sync.Mutex
		successes int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			req := validCreateRequest()
			req.Guests = 1

			if _, err := svc.Create(context.Background(), gModel.Caller{}, req); err == nil {
				successMu.Lock()
				successes++
				successMu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, capacity, successes)
	assert.Equal(t, capacity, admitted)
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestService(ctrl)

	reservation := model.Reservation{
		ID:           "reservation-id",
		RestaurantID: testRestaurantID,
		Time:         "6:00 PM",
		Guests:       4,
		Status:       model.StatusPending,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "reservation-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "cache miss, successful get from db",
			id:   "reservation-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantID: "reservation-id",
		},
		{
			name: "reservation not found",
			id:   "nonexistent-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			id:   "reservation-id",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, result.ID)
				}
			}
		})
	}
}
