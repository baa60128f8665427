package pubsub

type Subscriber struct {
	payload chan any
}

func NewSubscriber(channelCapacity int) *Subscriber {
	if channelCapacity > 0 {
		return &Subscriber{
			payload: make(chan any, channelCapacity),
		}
	}
	return &Subscriber{
		payload: make(chan any),
	}
}

// Signal delivers without blocking. A subscriber that cannot keep up loses
// events rather than stalling the publisher.
func (s *Subscriber) Signal(data any) {
	select {
	case s.payload <- data:
	default:
	}
}

func (s *Subscriber) GetChannel() <-chan any {
	return s.payload
}

func (s *Subscriber) CloseChannel() {
	close(s.payload)
}
