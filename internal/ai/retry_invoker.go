package ai

import "context"

// RetryTextInvoker wraps any TextInvoker with RetryWithBackoff retry logic.
type RetryTextInvoker struct {
	Inner  TextInvoker
	Policy BackoffPolicy
}

// Invoke delegates to the inner invoker, retrying rate-limited calls.
func (r *RetryTextInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	var out string
	err := RetryWithBackoff(ctx, r.Policy, func() error {
		var innerErr error
		out, innerErr = r.Inner.Invoke(ctx, prompt)
		return innerErr
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// RetryImageInvoker wraps any ImageInvoker with RetryWithBackoff retry logic.
type RetryImageInvoker struct {
	Inner  ImageInvoker
	Policy BackoffPolicy
}

// GenerateImage delegates to the inner invoker, retrying rate-limited calls.
func (r *RetryImageInvoker) GenerateImage(ctx context.Context, req ImageRequest) ([]byte, error) {
	var out []byte
	err := RetryWithBackoff(ctx, r.Policy, func() error {
		var innerErr error
		out, innerErr = r.Inner.GenerateImage(ctx, req)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
