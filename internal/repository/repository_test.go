package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/tasknest-api/internal/database"
	"github.com/yukikurage/tasknest-api/internal/models"
	"github.com/yukikurage/tasknest-api/internal/utils"
	"gorm.io/gorm"
)

type RepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	tasks TaskRepository
	users UserRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := database.OpenMemory()
	s.Require().NoError(err)

	s.db = db
	s.tasks = NewTaskRepository(db)
	s.users = NewUserRepository(db)
}

func (s *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *RepositoryTestSuite) createUser(name string) *models.User {
	user := &models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
	}
	s.Require().NoError(s.users.Create(user))
	return user
}

func (s *RepositoryTestSuite) createTask(ownerID uint64, name string) *models.Task {
	task := &models.Task{
		OwnerID:  ownerID,
		Name:     name,
		Category: models.CategoryWork,
		Priority: models.PriorityLow,
	}
	s.Require().NoError(s.tasks.Create(task))
	return task
}

func (s *RepositoryTestSuite) TestListByOwnerIsScopedAndOrdered() {
	alice := s.createUser("alice")
	bob := s.createUser("bobby")
	first := s.createTask(alice.ID, "first")
	s.createTask(bob.ID, "not mine")
	second := s.createTask(alice.ID, "second")

	tasks, err := s.tasks.ListByOwner(alice.ID)
	s.Require().NoError(err)

	s.Require().Len(tasks, 2)
	s.Equal(first.ID, tasks[0].ID)
	s.Equal(second.ID, tasks[1].ID)
	s.False(tasks[0].Completed)
}

func (s *RepositoryTestSuite) TestToggleCompleted() {
	alice := s.createUser("alice")
	task := s.createTask(alice.ID, "toggle me")

	toggled, err := s.tasks.ToggleCompleted(task.ID, alice.ID)
	s.Require().NoError(err)
	s.True(toggled.Completed)

	stored, err := s.tasks.FindByID(task.ID)
	s.Require().NoError(err)
	s.True(stored.Completed)

	toggled, err = s.tasks.ToggleCompleted(task.ID, alice.ID)
	s.Require().NoError(err)
	s.False(toggled.Completed)
}

func (s *RepositoryTestSuite) TestToggleCompletedRejectsOtherOwner() {
	alice := s.createUser("alice")
	bob := s.createUser("bobby")
	task := s.createTask(alice.ID, "alice's")

	_, err := s.tasks.ToggleCompleted(task.ID, bob.ID)
	s.ErrorIs(err, ErrNotOwner)

	stored, err := s.tasks.FindByID(task.ID)
	s.Require().NoError(err)
	s.False(stored.Completed)

	_, err = s.tasks.ToggleCompleted(9999, alice.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestOwnerIDIsNotUpdated() {
	alice := s.createUser("alice")
	bob := s.createUser("bobby")
	task := s.createTask(alice.ID, "mine")

	task.OwnerID = bob.ID
	task.Name = "renamed"
	s.Require().NoError(s.db.Save(task).Error)

	stored, err := s.tasks.FindByID(task.ID)
	s.Require().NoError(err)
	s.Equal(alice.ID, stored.OwnerID)
	s.Equal("renamed", stored.Name)
}

func (s *RepositoryTestSuite) TestDeleteOwnedRemovesComments() {
	alice := s.createUser("alice")
	task := s.createTask(alice.ID, "with comments")
	s.Require().NoError(s.tasks.AddComment(alice.ID, &models.Comment{TaskID: task.ID, Content: "one"}))

	s.Require().NoError(s.tasks.DeleteOwned(task.ID, alice.ID))

	_, err := s.tasks.FindByID(task.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	var count int64
	s.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&count)
	s.Zero(count)
}

func (s *RepositoryTestSuite) TestDeleteOwnedRejectsOtherOwner() {
	alice := s.createUser("alice")
	bob := s.createUser("bobby")
	task := s.createTask(alice.ID, "alice's")

	s.ErrorIs(s.tasks.DeleteOwned(task.ID, bob.ID), ErrNotOwner)

	_, err := s.tasks.FindByID(task.ID)
	s.NoError(err)
}

func (s *RepositoryTestSuite) TestCommentsArePagedInOrder() {
	alice := s.createUser("alice")
	task := s.createTask(alice.ID, "chatty")
	for _, content := range []string{"a", "b", "c"} {
		s.Require().NoError(s.tasks.AddComment(alice.ID, &models.Comment{TaskID: task.ID, Content: content}))
	}

	comments, total, err := s.tasks.ListComments(task.ID, utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(comments, 1)
	s.Equal("c", comments[0].Content)

	loaded, err := s.tasks.FindWithComments(task.ID)
	s.Require().NoError(err)
	s.Require().Len(loaded.Comments, 3)
	s.Equal("a", loaded.Comments[0].Content)
}

func (s *RepositoryTestSuite) TestAddCommentRejectsOtherOwner() {
	alice := s.createUser("alice")
	bob := s.createUser("bobby")
	task := s.createTask(alice.ID, "alice's")

	err := s.tasks.AddComment(bob.ID, &models.Comment{TaskID: task.ID, Content: "hi"})
	s.ErrorIs(err, ErrNotOwner)
}

func (s *RepositoryTestSuite) TestDeleteWithTasksCascades() {
	alice := s.createUser("alice")
	bob := s.createUser("bobby")
	aliceTask := s.createTask(alice.ID, "alice's")
	bobTask := s.createTask(bob.ID, "bob's")
	s.Require().NoError(s.tasks.AddComment(alice.ID, &models.Comment{TaskID: aliceTask.ID, Content: "gone"}))
	s.Require().NoError(s.tasks.AddComment(bob.ID, &models.Comment{TaskID: bobTask.ID, Content: "stays"}))

	s.Require().NoError(s.users.DeleteWithTasks(alice.ID))

	_, err := s.users.FindByID(alice.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	tasks, err := s.tasks.ListByOwner(alice.ID)
	s.Require().NoError(err)
	s.Empty(tasks)

	_, err = s.tasks.FindByID(aliceTask.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	var orphans int64
	s.db.Model(&models.Comment{}).Where("task_id = ?", aliceTask.ID).Count(&orphans)
	s.Zero(orphans)

	remaining, _, err := s.tasks.ListComments(bobTask.ID, utils.PaginationParams{Limit: 10})
	s.Require().NoError(err)
	s.Len(remaining, 1)
}

func (s *RepositoryTestSuite) TestDeleteWithTasksUnknownUser() {
	s.ErrorIs(s.users.DeleteWithTasks(42), gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestFindUserByEmailAndUsername() {
	alice := s.createUser("alice")

	byEmail, err := s.users.FindByEmail("alice@example.com")
	s.Require().NoError(err)
	s.Equal(alice.ID, byEmail.ID)

	byName, err := s.users.FindByUsername("alice")
	s.Require().NoError(err)
	s.Equal(alice.ID, byName.ID)

	_, err = s.users.FindByEmail("nobody@example.com")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestNewRepositoriesReturnGormImplementations(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	assert.IsType(t, &GormTaskRepository{}, NewTaskRepository(db))
	assert.IsType(t, &GormUserRepository{}, NewUserRepository(db))
}
