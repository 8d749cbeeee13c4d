package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dlehdeod1/newcornerkicks/internal/authstore"
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// identity is the printable login state
type identity struct {
	LoggedIn bool          `json:"loggedIn"`
	IsAdmin  bool          `json:"isAdmin"`
	User     *model.User   `json:"user,omitempty"`
	Player   *model.Player `json:"player,omitempty"`
}

func identityOf(s authstore.State) identity {
	return identity{LoggedIn: s.IsLoggedIn, IsAdmin: s.IsAdmin, User: s.User, Player: s.Player}
}

func printIdentity(w io.Writer, id identity) error {
	if !id.LoggedIn || id.User == nil {
		_, err := fmt.Fprintln(w, "로그인되어 있지 않습니다.")
		return err
	}
	if _, err := fmt.Fprintf(w, "User: %s (%s)\n", id.User.Username, id.User.Role); err != nil {
		return err
	}
	player := "(연결 안 됨)"
	if id.Player != nil {
		player = fmt.Sprintf("%s #%d", id.Player.Name, id.Player.ID)
	}
	_, err := fmt.Fprintf(w, "Player: %s\n", player)
	return err
}

func newAuthCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in and out",
	}

	cmd.AddCommand(newAuthLoginCmd(rt))
	cmd.AddCommand(newAuthRegisterCmd(rt))
	cmd.AddCommand(newAuthLogoutCmd(rt))
	cmd.AddCommand(newAuthWhoamiCmd(rt))
	cmd.AddCommand(newAuthLinkPlayerCmd(rt))

	return cmd
}

func (rt *runtime) saveLogin(cmd *cobra.Command, resp *clubapi.LoginResponse) error {
	if err := rt.auth.Login(cmd.Context(), resp.Token, resp.User, resp.Player); err != nil {
		return fmt.Errorf("failed to save login: %w", err)
	}
	id := identityOf(rt.auth.State())
	return rt.output().Print(id, func(w io.Writer) error { return printIdentity(w, id) })
}

func newAuthLoginCmd(rt *runtime) *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rt.api.Auth.Login(cmd.Context(), user, pass)
			if err != nil {
				return err
			}
			return rt.saveLogin(cmd, resp)
		},
	}

	cmd.Flags().StringVarP(&user, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&pass, "password", "p", "", "Password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthRegisterCmd(rt *runtime) *cobra.Command {
	var req clubapi.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rt.api.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return rt.saveLogin(cmd, resp)
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAuthLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			return rt.output().PrintMessage("로그아웃되었습니다.")
		},
	}
}

func newAuthWhoamiCmd(rt *runtime) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Long:  "Show the logged-in user. Unless --offline is given the profile is refreshed from the server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := rt.auth.State()
			if state.IsLoggedIn && !offline {
				me, err := rt.api.Auth.Me(cmd.Context(), state.Token)
				if err != nil {
					return err
				}
				if err := rt.auth.Login(cmd.Context(), state.Token, me.User, me.Player); err != nil {
					return err
				}
				state = rt.auth.State()
			}
			id := identityOf(state)
			return rt.output().Print(id, func(w io.Writer) error { return printIdentity(w, id) })
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Print the saved identity without calling the server")

	return cmd
}

func newAuthLinkPlayerCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "link-player <player-id>",
		Short: "Link your account to a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("player id", args[0])
			if err != nil {
				return err
			}
			token, err := rt.token()
			if err != nil {
				return err
			}
			player, err := rt.api.Players.LinkUser(cmd.Context(), token, id)
			if err != nil {
				return err
			}
			if err := rt.auth.SetPlayer(cmd.Context(), player); err != nil {
				return err
			}
			return rt.output().Print(player, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s 선수와 연결되었습니다.\n", player.Name)
				return err
			})
		},
	}
}
