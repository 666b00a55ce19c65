/*
Package authsdk is the client side of the recipebox user API.

# Client

SDKClient wraps the HTTP endpoints:

	kv, err := authsdk.OpenSQLiteKV(ctx, "~/.recipebox/state.db")
	tokens := authsdk.NewTokenStore(kv)
	client := authsdk.NewSDKClient("http://localhost:8080", tokens)

	// Create an account
	user, err := client.Register(ctx, authsdk.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret123"})

	// Log in; the token is saved in tokens
	_, err = client.Login(ctx, authsdk.LoginRequest{Email: "ann@x.com", Password: "secret123"})

	// Authenticated call using the saved token
	me, err := client.Current(ctx)

	// Forget the token
	err = client.Logout(ctx)

Requests are validated locally before they are sent. Both local and server
side field failures come back as *APIError with Fields set:

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) {
		fmt.Println(apiErr.Field("email"))
	}

# Token Store

TokenStore keeps the token returned by Login under the key "jwtToken" in a
KV. SQLiteKV is durable; MemoryKV is for tests and throwaway sessions.

CurrentIdentity and Session decode the token WITHOUT verifying it, into an
Identity. That is for display only (who am I, when do I need to log in
again). Session also clears a token whose exp has passed. The server
remains the only place a token is trusted.
*/
package authsdk
