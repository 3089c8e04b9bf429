package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/justestif/go-ytmusic/internal/clustering"
	"github.com/justestif/go-ytmusic/internal/web"
)

// printOrFail prints v and then returns err, so partial results are still
// shown.
func printOrFail[T any](cmd *cobra.Command, v []T, err error) error {
	if err != nil && len(v) == 0 {
		return err
	}
	if perr := printJSON(cmd.OutOrStdout(), v); perr != nil {
		return perr
	}
	return err
}

func newSearchCmd(o *rootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search songs, videos, artists, albums and playlists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				q := args[0]
				switch kind {
				case "", "all":
					v, err := a.catalog.Search(ctx, q)
					return printOrFail(cmd, v, err)
				case "songs":
					v, err := a.catalog.SearchSongs(ctx, q)
					return printOrFail(cmd, v, err)
				case "videos":
					v, err := a.catalog.SearchVideos(ctx, q)
					return printOrFail(cmd, v, err)
				case "artists":
					v, err := a.catalog.SearchArtists(ctx, q)
					return printOrFail(cmd, v, err)
				case "albums":
					v, err := a.catalog.SearchAlbums(ctx, q)
					return printOrFail(cmd, v, err)
				case "playlists":
					v, err := a.catalog.SearchPlaylists(ctx, q)
					return printOrFail(cmd, v, err)
				default:
					return fmt.Errorf("unknown --type %q", kind)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "songs, videos, artists, albums or playlists (default: mixed)")
	return cmd
}

func newSuggestCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [query]",
		Short: "List search suggestions for a partial query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetSearchSuggestions(ctx, args[0])
				return printOrFail(cmd, v, err)
			})
		},
	}
}

// songOutput is one line of a multi-song lookup.
type songOutput struct {
	VideoID string `json:"videoId"`
	Song    any    `json:"song,omitempty"`
	Error   string `json:"error,omitempty"`
}

func newSongCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "song [videoId...]",
		Short: "Fetch song metadata; several IDs are fetched concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				if len(args) == 1 {
					v, err := a.catalog.GetSong(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), v)
				}

				results, err := a.catalog.GetSongs(ctx, args)
				out := make([]songOutput, len(results))
				for i, r := range results {
					out[i] = songOutput{VideoID: r.VideoID}
					if r.Error != nil {
						out[i].Error = r.Error.Error()
					} else {
						out[i].Song = r.Song
					}
				}
				return printOrFail(cmd, out, err)
			})
		},
	}
}

func newVideoCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "video [videoId]",
		Short: "Fetch video metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetVideo(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), v)
			})
		},
	}
}

func newLyricsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lyrics [videoId]",
		Short: "Print the lyrics of a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				lines, err := a.catalog.GetLyrics(ctx, args[0])
				if err != nil {
					return err
				}
				if lines == nil {
					return errors.New("no lyrics available")
				}
				for _, l := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), l)
				}
				return nil
			})
		},
	}
}

func newArtistCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "artist [artistId]",
		Short: "Fetch an artist page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetArtist(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), v)
			})
		},
	}
}

func newArtistSongsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "artist-songs [artistId]",
		Short: "List an artist's songs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetArtistSongs(ctx, args[0])
				return printOrFail(cmd, v, err)
			})
		},
	}
}

func newArtistAlbumsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "artist-albums [artistId]",
		Short: "List an artist's albums",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetArtistAlbums(ctx, args[0])
				return printOrFail(cmd, v, err)
			})
		},
	}
}

func newAlbumCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "album [albumId]",
		Short: "Fetch an album and its tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetAlbum(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), v)
			})
		},
	}
}

func newPlaylistCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "playlist [playlistId]",
		Short: "Fetch a playlist header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetPlaylist(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), v)
			})
		},
	}
}

func newPlaylistVideosCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "playlist-videos [playlistId]",
		Short: "List every video of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetPlaylistVideos(ctx, args[0])
				return printOrFail(cmd, v, err)
			})
		},
	}
}

func newPlaylistGroupsCmd(o *rootOptions) *cobra.Command {
	var (
		k       int
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "playlist-groups [playlistId]",
		Short: "Group a playlist's videos by length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.PlaylistGroups(ctx, args[0], k)
				if err != nil {
					return err
				}
				if summary {
					fmt.Fprint(cmd.OutOrStdout(), clustering.FormatGroupSummary(v.Groups, len(v.Ungrouped)))
					return nil
				}
				return printJSON(cmd.OutOrStdout(), v)
			})
		},
	}
	cmd.Flags().IntVarP(&k, "groups", "k", clustering.DefaultGroups, "number of groups")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a human-readable summary instead of JSON")
	return cmd
}

func newHomeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Fetch the home feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				v, err := a.catalog.GetHomeSections(ctx)
				return printOrFail(cmd, v, err)
			})
		},
	}
}

func newServeCmd(o *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				if addr == "" {
					addr = a.cfg.Addr
				}
				server := web.NewServer(web.ServerConfig{
					Addr:  addr,
					Ready: a.client.Initialized,
				}, a.catalog)
				return server.Run()
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from ADDR)")
	return cmd
}

func newPruneCmd(o *rootOptions) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete stored snapshots older than a duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, a *app) error {
				if a.db == nil {
					return errors.New("prune needs DATABASE_URL")
				}
				n, err := a.db.Entities().DeleteStale(ctx, time.Now().Add(-olderThan))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d snapshots\n", n)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "age of snapshots to delete")
	return cmd
}
