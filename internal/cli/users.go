package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"
)

// Users prints every registered username with its registration time.
func (a *App) Users(ctx context.Context) error {
	list, err := a.authService.ListUsers(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Listing failed:", describeError(err))
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No users registered")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tREGISTERED")
	for _, u := range list {
		fmt.Fprintf(tw, "%s\t%s\n", u.UserName, u.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

// Stats prints the account count and the most recent registration.
func (a *App) Stats(ctx context.Context) error {
	st, err := a.authService.Stats(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Stats failed:", describeError(err))
		return err
	}

	fmt.Fprintf(a.out, "Total users: %d\n", st.TotalUsers)
	if st.LatestUser != "" {
		fmt.Fprintf(a.out, "Latest user: %s\n", st.LatestUser)
	}
	return nil
}
