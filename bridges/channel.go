package bridges

import (
	"errors"
	"fmt"
)

var ErrChannel = errors.New("hint channel error")

type channel struct {
	ops     chan Operation
	results chan OperationResult
	quit    chan struct{}
}

func newChannel() *channel {
	return &channel{
		ops:     make(chan Operation),
		results: make(chan OperationResult),
		quit:    make(chan struct{}),
	}
}

// request sends op and blocks for its single reply.
func (c *channel) request(op Operation) (OperationResult, error) {
	select {
	case c.ops <- op:
	case <-c.quit:
		return nil, fmt.Errorf("%w: send %T", ErrChannel, op)
	}
	select {
	case result := <-c.results:
		return result, nil
	case <-c.quit:
		return nil, fmt.Errorf("%w: receive reply of %T", ErrChannel, op)
	}
}

func (c *channel) end() {
	select {
	case c.ops <- End{}:
	case <-c.quit:
	}
}

func (c *channel) reply(result OperationResult) error {
	select {
	case c.results <- result:
		return nil
	case <-c.quit:
		return fmt.Errorf("%w: reply %T", ErrChannel, result)
	}
}

func expect[T OperationResult](result OperationResult, err error) (ret T, _ error) {
	if err != nil {
		return ret, err
	}
	ret, ok := result.(T)
	if !ok {
		return ret, fmt.Errorf("%w: unexpected result %T", ErrChannel, result)
	}
	return ret, nil
}
