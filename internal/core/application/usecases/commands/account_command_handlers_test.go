package commands_test

import (
	"errors"
	"testing"
	"time"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const defaultPhoto = "https://cdn.example.com/default.png"

// userTx registers one user unit of work on the factory.
func userTx(t *testing.T, factory *MockUserUoWFactory) (*MockUoW, *MockUserRepository) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory.On("Create").Return(uow).Once()
	return uow, repo
}

func notFound(email string) error {
	return errs.NewObjectNotFoundError("user", email)
}

func TestRegisterUserCommandHandler_Handle(t *testing.T) {
	newCmd := func(t *testing.T, photo *ports.File) commands.RegisterUserCommand {
		t.Helper()
		cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), "Mona", " Mona@Example.com ", "s3cret-pass", photo)
		require.NoError(t, err)
		return cmd
	}

	t.Run("creates an unverified user and mails the code", func(t *testing.T) {
		ctx := t.Context()
		cmd := newCmd(t, nil)
		factory := new(MockUserUoWFactory)
		uow, repo := userTx(t, factory)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "s3cret-pass").Return("hashed", nil).Once()
		mailer := new(MockMailer)

		var added *user.User
		mock.InOrder(
			repo.On("GetByEmail", ctx, "mona@example.com").Return(nil, notFound("mona@example.com")).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*user.User")).
				Run(func(args mock.Arguments) { added = args.Get(1).(*user.User) }).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			mailer.On("SendVerificationCode", ctx, "mona@example.com", "Mona", mock.AnythingOfType("string")).
				Return(nil).Once(),
		)

		handler := commands.NewRegisterUserCommandHandler(factory, hasher, mailer, new(MockPhotoStorage), defaultPhoto, fixedClock())
		require.NoError(t, handler.Handle(ctx, cmd))

		require.NotNil(t, added)
		assert.Equal(t, cmd.UserID(), added.ID())
		assert.Equal(t, "hashed", added.PasswordHash())
		assert.Equal(t, defaultPhoto, added.Photo())
		assert.Equal(t, user.RoleUser, added.Role())
		assert.False(t, added.IsVerified())
		assert.Len(t, added.VerificationCode(), 4)
		mailer.AssertCalled(t, "SendVerificationCode", ctx, "mona@example.com", "Mona", added.VerificationCode())
	})

	t.Run("duplicate email", func(t *testing.T) {
		ctx := t.Context()
		photo := photoFile("avatar")
		cmd := newCmd(t, &photo)
		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "s3cret-pass").Return("hashed", nil).Once()
		storage := new(MockPhotoStorage)
		storage.On("Save", ctx, photo).Return("https://cdn.example.com/avatar.jpg", nil).Once()
		storage.On("Delete", ctx, "https://cdn.example.com/avatar.jpg").Return(nil).Once()
		repo.On("GetByEmail", ctx, "mona@example.com").Return(newTestUser(t, "mona@example.com"), nil).Once()
		mailer := new(MockMailer)

		handler := commands.NewRegisterUserCommandHandler(factory, hasher, mailer, storage, defaultPhoto, fixedClock())
		err := handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrEmailTaken)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		mailer.AssertNotCalled(t, "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		storage.AssertExpectations(t)
	})

	t.Run("mail failure removes the account", func(t *testing.T) {
		ctx := t.Context()
		cmd := newCmd(t, nil)
		factory := new(MockUserUoWFactory)
		addUoW, addRepo := userTx(t, factory)
		removeUoW, removeRepo := userTx(t, factory)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "s3cret-pass").Return("hashed", nil).Once()
		mailer := new(MockMailer)

		mock.InOrder(
			addRepo.On("GetByEmail", ctx, "mona@example.com").Return(nil, notFound("mona@example.com")).Once(),
			addRepo.On("Add", ctx, mock.AnythingOfType("*user.User")).Return(nil).Once(),
			addUoW.On("Commit", ctx).Return(nil).Once(),
			mailer.On("SendVerificationCode", ctx, "mona@example.com", "Mona", mock.AnythingOfType("string")).
				Return(errors.New("smtp down")).Once(),
			removeRepo.On("Delete", ctx, cmd.UserID()).Return(nil).Once(),
			removeUoW.On("Commit", ctx).Return(nil).Once(),
		)

		handler := commands.NewRegisterUserCommandHandler(factory, hasher, mailer, new(MockPhotoStorage), defaultPhoto, fixedClock())
		err := handler.Handle(ctx, cmd)

		require.EqualError(t, err, "send verification email: smtp down")
		removeRepo.AssertExpectations(t)
		factory.AssertExpectations(t)
	})

	t.Run("constructor validation", func(t *testing.T) {
		_, err := commands.NewRegisterUserCommand(kernel.NewUUID(), "Mona", "not-an-email", "s3cret-pass", nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = commands.NewRegisterUserCommand(kernel.NewUUID(), "Mona", "mona@example.com", "short", nil)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestVerifyEmailCommandHandler_Handle(t *testing.T) {
	t.Run("valid code signs the user in", func(t *testing.T) {
		ctx := t.Context()
		u := newTestUser(t, "mona@example.com")
		require.NoError(t, u.IssueVerificationCode("1234", testNow.Add(-time.Minute)))
		cmd, err := commands.NewVerifyEmailCommand("mona@example.com", "1234")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		uow, repo := userTx(t, factory)
		tokens := new(MockTokenIssuer)
		expires := testNow.Add(90 * 24 * time.Hour)
		mock.InOrder(
			repo.On("GetByEmail", ctx, "mona@example.com").Return(u, nil).Once(),
			repo.On("Update", ctx, u).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			tokens.On("Issue", u.ID(), testNow).Return("jwt", expires, nil).Once(),
		)

		session, err := commands.NewVerifyEmailCommandHandler(factory, tokens, fixedClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.Session{UserID: u.ID(), Token: "jwt", ExpiresAt: expires}, session)
		assert.True(t, u.IsVerified())
	})

	t.Run("expired code", func(t *testing.T) {
		ctx := t.Context()
		u := newTestUser(t, "mona@example.com")
		require.NoError(t, u.IssueVerificationCode("1234", testNow.Add(-time.Hour)))
		cmd, err := commands.NewVerifyEmailCommand("mona@example.com", "1234")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		repo.On("GetByEmail", ctx, "mona@example.com").Return(u, nil).Once()

		_, err = commands.NewVerifyEmailCommandHandler(factory, new(MockTokenIssuer), fixedClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, user.ErrInvalidVerificationCode)
		assert.False(t, u.IsVerified())
	})

	t.Run("unknown email looks like a wrong code", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewVerifyEmailCommand("ghost@example.com", "1234")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, notFound("ghost@example.com")).Once()

		_, err = commands.NewVerifyEmailCommandHandler(factory, new(MockTokenIssuer), fixedClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, user.ErrInvalidVerificationCode)
	})
}

func TestLoginCommandHandler_Handle(t *testing.T) {
	t.Run("verified user gets a session", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		cmd, err := commands.NewLoginCommand("omar@example.com", "s3cret-pass")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		uow, repo := userTx(t, factory)
		repo.On("GetByEmail", ctx, "omar@example.com").Return(u, nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Compare", "hash", "s3cret-pass").Return(nil).Once()
		tokens := new(MockTokenIssuer)
		tokens.On("Issue", u.ID(), testNow).Return("jwt", testNow.Add(time.Hour), nil).Once()
		mailer := new(MockMailer)

		res, err := commands.NewLoginCommandHandler(factory, hasher, tokens, mailer, fixedClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, res.VerificationRequired)
		assert.Equal(t, "jwt", res.Session.Token)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		mailer.AssertNotCalled(t, "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unverified user gets a new code", func(t *testing.T) {
		ctx := t.Context()
		u := newTestUser(t, "mona@example.com")
		cmd, err := commands.NewLoginCommand("mona@example.com", "s3cret-pass")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		uow, repo := userTx(t, factory)
		hasher := new(MockPasswordHasher)
		hasher.On("Compare", "hash", "s3cret-pass").Return(nil).Once()
		tokens := new(MockTokenIssuer)
		mailer := new(MockMailer)
		mock.InOrder(
			repo.On("GetByEmail", ctx, "mona@example.com").Return(u, nil).Once(),
			repo.On("Update", ctx, u).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			mailer.On("SendVerificationCode", ctx, "mona@example.com", "Mona", mock.AnythingOfType("string")).
				Return(nil).Once(),
		)

		res, err := commands.NewLoginCommandHandler(factory, hasher, tokens, mailer, fixedClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, res.VerificationRequired)
		assert.Empty(t, res.Session.Token)
		assert.Len(t, u.VerificationCode(), 4)
		tokens.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		cmd, err := commands.NewLoginCommand("omar@example.com", "wrong-password")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		repo.On("GetByEmail", ctx, "omar@example.com").Return(u, nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Compare", "hash", "wrong-password").Return(errors.New("mismatch")).Once()

		_, err = commands.NewLoginCommandHandler(factory, hasher, new(MockTokenIssuer), new(MockMailer), fixedClock()).
			Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
		require.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("unknown email", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewLoginCommand("ghost@example.com", "s3cret-pass")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, notFound("ghost@example.com")).Once()
		hasher := new(MockPasswordHasher)

		_, err = commands.NewLoginCommandHandler(factory, hasher, new(MockTokenIssuer), new(MockMailer), fixedClock()).
			Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
		hasher.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
	})
}

func TestForgotPasswordCommandHandler_Handle(t *testing.T) {
	const resetBase = "https://crowdship.example.com/reset-password/"

	t.Run("stores the token hash and mails the link", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		cmd, err := commands.NewForgotPasswordCommand("omar@example.com")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		uow, repo := userTx(t, factory)
		repo.On("GetByEmail", ctx, "omar@example.com").Return(u, nil).Once()
		repo.On("Update", ctx, u).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		var link string
		mailer := new(MockMailer)
		mailer.On("SendPasswordReset", ctx, "omar@example.com", "Omar", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { link = args.String(3) }).
			Return(nil).Once()

		err = commands.NewForgotPasswordCommandHandler(factory, mailer, resetBase, fixedClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, len(link) > len(resetBase))
		token := link[len(resetBase):]
		assert.Equal(t, user.HashResetToken(token), u.ResetTokenHash())
		require.NotNil(t, u.ResetTokenExpires())
		assert.Equal(t, testNow.Add(user.PasswordResetTokenTTL), *u.ResetTokenExpires())
	})

	t.Run("mail failure withdraws the token", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		cmd, err := commands.NewForgotPasswordCommand("omar@example.com")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		for range 2 {
			uow, repo := userTx(t, factory)
			repo.On("GetByEmail", ctx, "omar@example.com").Return(u, nil).Once()
			repo.On("Update", ctx, u).Return(nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()
		}
		mailer := new(MockMailer)
		mailer.On("SendPasswordReset", ctx, "omar@example.com", "Omar", mock.AnythingOfType("string")).
			Return(errors.New("smtp down")).Once()

		err = commands.NewForgotPasswordCommandHandler(factory, mailer, resetBase, fixedClock()).Handle(ctx, cmd)

		require.EqualError(t, err, "send password reset email: smtp down")
		assert.Empty(t, u.ResetTokenHash())
		assert.Nil(t, u.ResetTokenExpires())
	})

	t.Run("unknown email", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewForgotPasswordCommand("ghost@example.com")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, notFound("ghost@example.com")).Once()
		mailer := new(MockMailer)

		err = commands.NewForgotPasswordCommandHandler(factory, mailer, resetBase, fixedClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResetPasswordCommandHandler_Handle(t *testing.T) {
	t.Run("valid token changes the password", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		u.StartPasswordReset(user.HashResetToken("reset-token"), testNow.Add(-time.Minute))
		cmd, err := commands.NewResetPasswordCommand("reset-token", "new-s3cret")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		uow, repo := userTx(t, factory)
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "new-s3cret").Return("new-hash", nil).Once()
		tokens := new(MockTokenIssuer)
		mock.InOrder(
			repo.On("GetByResetTokenHash", ctx, user.HashResetToken("reset-token")).Return(u, nil).Once(),
			repo.On("Update", ctx, u).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			tokens.On("Issue", u.ID(), testNow).Return("jwt", testNow.Add(time.Hour), nil).Once(),
		)

		session, err := commands.NewResetPasswordCommandHandler(factory, hasher, tokens, fixedClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "jwt", session.Token)
		assert.Equal(t, "new-hash", u.PasswordHash())
		assert.Empty(t, u.ResetTokenHash())
		assert.True(t, u.ChangedPasswordAfter(testNow.Add(-time.Hour)))
		assert.False(t, u.ChangedPasswordAfter(testNow))
	})

	t.Run("expired token", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		u.StartPasswordReset(user.HashResetToken("reset-token"), testNow.Add(-time.Hour))
		cmd, err := commands.NewResetPasswordCommand("reset-token", "new-s3cret")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		repo.On("GetByResetTokenHash", ctx, user.HashResetToken("reset-token")).Return(u, nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "new-s3cret").Return("new-hash", nil).Once()

		_, err = commands.NewResetPasswordCommandHandler(factory, hasher, new(MockTokenIssuer), fixedClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, user.ErrInvalidResetToken)
		assert.Equal(t, "hash", u.PasswordHash())
	})

	t.Run("unknown token", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewResetPasswordCommand("nope", "new-s3cret")
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		repo.On("GetByResetTokenHash", ctx, user.HashResetToken("nope")).Return(nil, notFound("token")).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "new-s3cret").Return("new-hash", nil).Once()

		_, err = commands.NewResetPasswordCommandHandler(factory, hasher, new(MockTokenIssuer), fixedClock()).Handle(ctx, cmd)

		require.ErrorIs(t, err, user.ErrInvalidResetToken)
	})
}

func TestUpdateMeCommandHandler_Handle(t *testing.T) {
	t.Run("rename only returns no session", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		name := "Omar K."
		cmd, err := commands.NewUpdateMeCommand(u.ID(), &name, nil, nil)
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		uow, repo := userTx(t, factory)
		repo.On("GetForUpdate", ctx, u.ID()).Return(u, nil).Once()
		repo.On("Update", ctx, u).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewUpdateMeCommandHandler(
			factory, new(MockPasswordHasher), new(MockTokenIssuer), new(MockPhotoStorage), fixedClock(),
		)
		session, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Equal(t, "Omar K.", u.Name())
	})

	t.Run("password change returns a fresh session", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		password := "brand-new-pass"
		cmd, err := commands.NewUpdateMeCommand(u.ID(), nil, &password, nil)
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		uow, repo := userTx(t, factory)
		repo.On("GetForUpdate", ctx, u.ID()).Return(u, nil).Once()
		repo.On("Update", ctx, u).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		hasher := new(MockPasswordHasher)
		hasher.On("Hash", password).Return("new-hash", nil).Once()
		tokens := new(MockTokenIssuer)
		tokens.On("Issue", u.ID(), testNow).Return("jwt", testNow.Add(time.Hour), nil).Once()

		session, err := commands.NewUpdateMeCommandHandler(factory, hasher, tokens, new(MockPhotoStorage), fixedClock()).
			Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, "jwt", session.Token)
		assert.Equal(t, "new-hash", u.PasswordHash())
	})

	t.Run("failed update removes the new photo", func(t *testing.T) {
		ctx := t.Context()
		u := restoreVerifiedUser(t, "omar@example.com")
		photo := photoFile("me")
		cmd, err := commands.NewUpdateMeCommand(u.ID(), nil, nil, &photo)
		require.NoError(t, err)

		factory := new(MockUserUoWFactory)
		_, repo := userTx(t, factory)
		repo.On("GetForUpdate", ctx, u.ID()).Return(u, nil).Once()
		repo.On("Update", ctx, u).Return(errs.ErrVersionIsInvalid).Once()
		storage := new(MockPhotoStorage)
		storage.On("Save", ctx, photo).Return("https://cdn.example.com/me.jpg", nil).Once()
		storage.On("Delete", ctx, "https://cdn.example.com/me.jpg").Return(nil).Once()

		_, err = commands.NewUpdateMeCommandHandler(factory, new(MockPasswordHasher), new(MockTokenIssuer), storage, fixedClock()).
			Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		storage.AssertExpectations(t)
	})

	t.Run("nothing to change", func(t *testing.T) {
		_, err := commands.NewUpdateMeCommand(kernel.NewUUID(), nil, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestDeleteMeCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	u := restoreVerifiedUser(t, "omar@example.com")
	cmd, err := commands.NewDeleteMeCommand(u.ID())
	require.NoError(t, err)

	factory := new(MockUserUoWFactory)
	uow, repo := userTx(t, factory)
	mock.InOrder(
		repo.On("GetForUpdate", ctx, u.ID()).Return(u, nil).Once(),
		repo.On("Update", ctx, u).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	require.NoError(t, commands.NewDeleteMeCommandHandler(factory).Handle(ctx, cmd))
	assert.True(t, u.IsDeleted())
	uow.AssertExpectations(t)
}
