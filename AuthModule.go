package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	loginSuccessMessage       = "LOGIN SUCCESS!"
	invalidCredentialsMessage = "Invalid username or password"
	loginFailedMessage        = "Login failed. Please try again."
	signupSuccessMessage      = "Signup request submitted successfully!"
	signupFailedMessage       = "Signup failed"
	logoutMessage             = "Logged out successfully"
)

type AuthModule struct {
	out        io.Writer
	gateway    ApiGatewayInterface
	session    SessionStoreInterface
	router     ViewRouterInterface
	document   *Document
	notifier   NotifierInterface
	validator  FormValidatorInterface
	dashboards *DashboardDispatcher
}

func (module *AuthModule) Login(ctx context.Context, username string, password string) error {
	module.document.SetText(ErrorMessageElement, "")

	response, err := module.gateway.Login(ctx, strings.TrimSpace(username), password)
	if err == nil && !response.User.Role.IsKnown() {
		err = fmt.Errorf("%w: unknown role %q", ErrLoginFailed, response.User.Role)
	}
	if err == nil {
		err = module.session.Save(response.Token, response.User.Role)
	}

	if err != nil {
		LoginFailedCount.Inc()
		_, _ = fmt.Fprintf(module.out, "Login error: %v\n", err)
		if errors.Is(err, ErrInvalidCredentials) {
			module.document.SetText(ErrorMessageElement, invalidCredentialsMessage)
		} else {
			module.document.SetText(ErrorMessageElement, loginFailedMessage)
		}
		return err
	}

	module.notifier.Alert(loginSuccessMessage)

	return module.dashboards.ShowDashboard(ctx, response.User.Role)
}

func (module *AuthModule) Signup(ctx context.Context, request SignupRequest) error {
	module.document.SetText(MessageElement, "")
	request.Username = strings.TrimSpace(request.Username)
	request.Role = Role(strings.ToUpper(string(request.Role)))

	if err := module.validator.Validate(request); err != nil {
		return rejectForm(module.notifier, err)
	}

	message, err := module.gateway.Signup(ctx, request)
	requestError := &RequestError{}
	if err != nil && !errors.As(err, &requestError) {
		_, _ = fmt.Fprintf(module.out, "Signup error: %v\n", err)
		module.document.SetText(MessageElement, signupFailedMessage)
		module.notifier.Alert(signupFailedMessage)
		return err
	}

	module.document.SetText(MessageElement, message)
	if err != nil {
		_, _ = fmt.Fprintf(module.out, "Signup rejected: %v\n", err)
		return err
	}

	module.notifier.Info(signupSuccessMessage)

	return nil
}

func (module *AuthModule) Logout() error {
	err := module.session.Clear()
	if err != nil {
		_, _ = fmt.Fprintf(module.out, "Failed to clear session: %v\n", err)
	}

	module.document.Reset()
	module.notifier.Info(logoutMessage)

	return errors.Join(err, module.router.ShowSection(LoginSection))
}
