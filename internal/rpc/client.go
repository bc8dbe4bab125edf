package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gacha-sim/internal/gacha"
)

// Client calls the draw service and decodes replies into Go types.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) call(ctx context.Context, name string, req map[string]any, out any) error {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return err
	}
	reply := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+name, in, reply); err != nil {
		return err
	}
	return fromStruct(reply, out)
}

// CreateSession starts a session on the given banner and returns its id.
func (c *Client) CreateSession(ctx context.Context, kind gacha.BannerKind) (string, error) {
	var r CreateSessionReply
	if err := c.call(ctx, "CreateSession", map[string]any{"banner": string(kind)}, &r); err != nil {
		return "", err
	}
	return r.Session, nil
}

func (c *Client) Draw(ctx context.Context, id string, n int) (DrawReply, error) {
	var r DrawReply
	err := c.call(ctx, "Draw", map[string]any{"session": id, "count": n}, &r)
	return r, err
}

// SetWant picks the chased slot; a negative slot clears it.
func (c *Client) SetWant(ctx context.Context, id string, slot int) (DrawReply, error) {
	var r DrawReply
	err := c.call(ctx, "SetWant", map[string]any{"session": id, "slot": slot}, &r)
	return r, err
}
