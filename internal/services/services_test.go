package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/services/mocks"
	"github.com/mrlokans/userbooks/internal/storage"
)

func quietLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

type ServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	ctx  context.Context

	userRepo *mocks.MockRepository[entities.User]
	bookRepo *mocks.MockRepository[entities.Book]
	users    *UserService
	books    *BookService
}

func TestServices(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())

	s.userRepo = mocks.NewMockUserRepository(s.ctrl)
	s.bookRepo = mocks.NewMockBookRepository(s.ctrl)
	s.users = NewUserService(s.userRepo, quietLog())
	s.books = NewBookService(s.bookRepo, quietLog())
}

func (s *ServiceTestSuite) TestCreateUser_SavesWithZeroID() {
	stored := entities.User{ID: 1, FullName: "Kirill", Title: "reader", Age: 50}
	s.userRepo.EXPECT().
		Save(gomock.Any(), entities.User{FullName: "Kirill", Title: "reader", Age: 50}).
		Return(stored, nil).Times(1)

	got, err := s.users.CreateUser(s.ctx, UserDto{ID: 99, FullName: "Kirill", Title: "reader", Age: 50})

	s.Require().NoError(err)
	s.Equal(UserDto{ID: 1, FullName: "Kirill", Title: "reader", Age: 50}, got)
}

func (s *ServiceTestSuite) TestCreateUser_InvalidNeverTouchesStorage() {
	// No expectations: any repository call fails the test.
	_, err := s.users.CreateUser(s.ctx, UserDto{FullName: "Kirill", Title: "reader", Age: 130})

	s.Require().ErrorIs(err, entities.ErrValidation)
	var verr *entities.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal("age", verr.Fields[0].Field)
}

func (s *ServiceTestSuite) TestUpdateUser_OverwritesExisting() {
	existing := entities.User{ID: 3, FullName: "Old", Title: "reader", Age: 20}
	updated := entities.User{ID: 3, FullName: "New", Title: "writer", Age: 21}

	gomock.InOrder(
		s.userRepo.EXPECT().FindByID(gomock.Any(), uint(3)).Return(existing, true, nil),
		s.userRepo.EXPECT().Save(gomock.Any(), updated).Return(updated, nil),
	)

	got, err := s.users.UpdateUser(s.ctx, UserDto{ID: 3, FullName: "New", Title: "writer", Age: 21})

	s.Require().NoError(err)
	s.Equal(UserDtoOf(updated), got)
}

func (s *ServiceTestSuite) TestUpdateUser_MissingFailsBeforeWrite() {
	s.userRepo.EXPECT().FindByID(gomock.Any(), uint(42)).Return(entities.User{}, false, nil)
	s.userRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.users.UpdateUser(s.ctx, UserDto{ID: 42, FullName: "Ghost", Title: "reader", Age: 30})

	var nf *storage.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal(entities.KindUser, nf.Kind)
	s.Equal(uint(42), nf.ID)
}

func (s *ServiceTestSuite) TestGetUserByID_NotFound() {
	s.userRepo.EXPECT().FindByID(gomock.Any(), uint(7)).Return(entities.User{}, false, nil)

	_, err := s.users.GetUserByID(s.ctx, 7)

	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *ServiceTestSuite) TestGetUserByID_BackendFailurePropagates() {
	driverErr := storage.Backend("find user", errors.New("disk I/O error"))
	s.userRepo.EXPECT().FindByID(gomock.Any(), uint(7)).Return(entities.User{}, false, driverErr)

	_, err := s.users.GetUserByID(s.ctx, 7)

	s.ErrorIs(err, storage.ErrBackend)
	s.NotErrorIs(err, storage.ErrNotFound)
}

func (s *ServiceTestSuite) TestGetAllUsers_EmptyIsNonNil() {
	s.userRepo.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

	got, err := s.users.GetAllUsers(s.ctx)

	s.Require().NoError(err)
	s.NotNil(got)
	s.Empty(got)
}

func (s *ServiceTestSuite) TestDeleteUserByID_AbsentIsNoop() {
	s.userRepo.EXPECT().ExistsByID(gomock.Any(), uint(5)).Return(false, nil)
	s.userRepo.EXPECT().DeleteByID(gomock.Any(), gomock.Any()).Times(0)

	s.NoError(s.users.DeleteUserByID(s.ctx, 5))
}

func (s *ServiceTestSuite) TestDeleteUserByID_Present() {
	gomock.InOrder(
		s.userRepo.EXPECT().ExistsByID(gomock.Any(), uint(5)).Return(true, nil),
		s.userRepo.EXPECT().DeleteByID(gomock.Any(), uint(5)).Return(nil),
	)

	s.NoError(s.users.DeleteUserByID(s.ctx, 5))
}

func (s *ServiceTestSuite) TestCreateBook() {
	s.bookRepo.EXPECT().
		Save(gomock.Any(), entities.Book{UserID: 1, Title: "A", Author: "X", PageCount: 100}).
		Return(entities.Book{ID: 4, UserID: 1, Title: "A", Author: "X", PageCount: 100}, nil)

	got, err := s.books.CreateBook(s.ctx, BookDto{UserID: 1, Title: "A", Author: "X", PageCount: 100})

	s.Require().NoError(err)
	s.Equal(uint(4), got.ID)
}

func (s *ServiceTestSuite) TestCreateBook_Invalid() {
	tests := map[string]BookDto{
		"no owner":       {Title: "A", Author: "X", PageCount: 100},
		"zero pages":     {UserID: 1, Title: "A", Author: "X"},
		"negative pages": {UserID: 1, Title: "A", Author: "X", PageCount: -5},
		"empty title":    {UserID: 1, Author: "X", PageCount: 100},
	}
	for name, dto := range tests {
		s.Run(name, func() {
			_, err := s.books.CreateBook(s.ctx, dto)
			s.ErrorIs(err, entities.ErrValidation)
		})
	}
}

func (s *ServiceTestSuite) TestCreateBook_MissingOwnerFromBackend() {
	s.bookRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Book{}, storage.NotFound(entities.KindUser, 9))

	_, err := s.books.CreateBook(s.ctx, BookDto{UserID: 9, Title: "A", Author: "X", PageCount: 100})

	var nf *storage.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal(entities.KindUser, nf.Kind)
}

func (s *ServiceTestSuite) TestUpdateBook_MissingFailsBeforeWrite() {
	s.bookRepo.EXPECT().FindByID(gomock.Any(), uint(999)).Return(entities.Book{}, false, nil)

	_, err := s.books.UpdateBook(s.ctx, BookDto{ID: 999, UserID: 1, Title: "A", Author: "X", PageCount: 100})

	var nf *storage.NotFoundError
	s.Require().ErrorAs(err, &nf)
	s.Equal(entities.KindBook, nf.Kind)
	s.Equal(uint(999), nf.ID)
}

func (s *ServiceTestSuite) TestUpdateBook_ReplacesAllFields() {
	existing := entities.Book{ID: 2, UserID: 1, Title: "A", Author: "X", PageCount: 100}
	want := entities.Book{ID: 2, UserID: 3, Title: "B", Author: "Y", PageCount: 200}

	gomock.InOrder(
		s.bookRepo.EXPECT().FindByID(gomock.Any(), uint(2)).Return(existing, true, nil),
		s.bookRepo.EXPECT().Save(gomock.Any(), want).Return(want, nil),
	)

	got, err := s.books.UpdateBook(s.ctx, BookDtoOf(want))

	s.Require().NoError(err)
	s.Equal(BookDtoOf(want), got)
}

func (s *ServiceTestSuite) TestGetBookByID_NotFoundCarriesID() {
	s.bookRepo.EXPECT().FindByID(gomock.Any(), uint(999)).Return(entities.Book{}, false, nil)

	_, err := s.books.GetBookByID(s.ctx, 999)

	s.EqualError(err, "book with id 999 not found")
}

func (s *ServiceTestSuite) TestDeleteBookByID_AbsentIsNoop() {
	s.bookRepo.EXPECT().ExistsByID(gomock.Any(), uint(8)).Return(false, nil)

	s.NoError(s.books.DeleteBookByID(s.ctx, 8))
}
